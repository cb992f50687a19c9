package inventory

import "strings"

// NormalizeDeviceType resolves the raw value against the synonym table by
// case-insensitive exact lookup. There is no fuzzy matching: a miss yields
// an empty type at zero confidence.
func NormalizeDeviceType(raw string, steps *Steps) (string, float64) {
	steps.Add("device_type_normalized")
	s := strings.ToLower(CleanString(raw))
	if s == "" {
		return "", 0.0
	}
	if canonical, ok := deviceTypeSynonyms[s]; ok {
		return canonical, 1.0
	}
	return "", 0.0
}
