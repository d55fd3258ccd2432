package predictor

import "errors"

var (
	ErrMissingInput             = errors.New("MISSING_INPUT")
	ErrFieldAccess              = errors.New("FIELD_ACCESS_FAILED")
	ErrBackendInvocation        = errors.New("BACKEND_INVOCATION_FAILED")
	ErrEmptyBackendResponse     = errors.New("EMPTY_BACKEND_RESPONSE")
	ErrMalformedBackendResponse = errors.New("MALFORMED_BACKEND_RESPONSE")
)

// ErrorCode returns the code of the first sentinel err wraps, or
// "UNKNOWN_ERROR".
func ErrorCode(err error) string {
	for _, sentinel := range []error{
		ErrMissingInput,
		ErrFieldAccess,
		ErrBackendInvocation,
		ErrEmptyBackendResponse,
		ErrMalformedBackendResponse,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "UNKNOWN_ERROR"
}
