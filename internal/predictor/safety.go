package predictor

import (
	"fmt"
	"strings"
)

type HarmCategory string

const (
	HarmHarassment       HarmCategory = "harassment"
	HarmHateSpeech       HarmCategory = "hate_speech"
	HarmSexuallyExplicit HarmCategory = "sexually_explicit"
	HarmDangerousContent HarmCategory = "dangerous_content"
)

// HarmCategories lists every category a SafetyPolicy can configure.
var HarmCategories = []HarmCategory{
	HarmHarassment,
	HarmHateSpeech,
	HarmSexuallyExplicit,
	HarmDangerousContent,
}

type Threshold string

const (
	BlockNone           Threshold = "BLOCK_NONE"
	BlockOnlyHigh       Threshold = "BLOCK_ONLY_HIGH"
	BlockMediumAndAbove Threshold = "BLOCK_MEDIUM_AND_ABOVE"
	BlockLowAndAbove    Threshold = "BLOCK_LOW_AND_ABOVE"
)

// ParseThreshold accepts a threshold name in any case.
func ParseThreshold(s string) (Threshold, error) {
	t := Threshold(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case BlockNone, BlockOnlyHigh, BlockMediumAndAbove, BlockLowAndAbove:
		return t, nil
	}
	return "", fmt.Errorf("unknown safety threshold %q", s)
}

// SafetyPolicy sets one filtering threshold per harm category.
type SafetyPolicy map[HarmCategory]Threshold

// NewSafetyPolicy parses a category -> threshold name mapping. Every category
// must be set.
func NewSafetyPolicy(thresholds map[string]string) (SafetyPolicy, error) {
	policy := make(SafetyPolicy, len(HarmCategories))
	for _, category := range HarmCategories {
		name, ok := thresholds[string(category)]
		if !ok {
			return nil, fmt.Errorf("missing safety threshold for %s", category)
		}
		t, err := ParseThreshold(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", category, err)
		}
		policy[category] = t
	}
	return policy, nil
}
