package predictor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BerylCAtieno/admissions-predictor/internal/models"
)

// ParseRequest checks that both top-level fields are present and decodes
// them. Absent, null or empty inputs give ErrMissingInput; a profile that is
// not an object, or a college list that is an object, gives ErrFieldAccess.
func ParseRequest(req models.PredictionRequest) (*models.StudentProfile, []string, error) {
	if isAbsent(req.Profile) || isAbsent(req.Colleges) {
		return nil, nil, ErrMissingInput
	}

	var profile models.StudentProfile
	if err := json.Unmarshal(req.Profile, &profile); err != nil {
		return nil, nil, fmt.Errorf("%w: profile: %v", ErrFieldAccess, err)
	}

	if bytes.HasPrefix(bytes.TrimSpace(req.Colleges), []byte("{")) {
		return nil, nil, fmt.Errorf("%w: colleges must be a list of names", ErrFieldAccess)
	}

	var list models.List
	if err := json.Unmarshal(req.Colleges, &list); err != nil {
		return nil, nil, fmt.Errorf("%w: colleges: %v", ErrFieldAccess, err)
	}
	colleges := list.Items()
	if len(colleges) == 0 {
		return nil, nil, ErrMissingInput
	}

	return &profile, colleges, nil
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
