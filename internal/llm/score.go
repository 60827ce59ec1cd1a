package llm

import (
	"regexp"
	"strconv"
)

// scorePattern matches the score line the prompt requests: "ATS Score: X/10",
// also accepting the "ATS Compatibility Score/Rating" variants the provider
// sometimes produces. The numeric group is an integer or one-decimal float.
var scorePattern = regexp.MustCompile(`(?i)\bATS(?:\s+Compatibility)?\s+(?:Score|Rating)\s*:\s*(\d+(?:\.\d)?)\s*/\s*10\b`)

// ParseATSScore extracts the ATS score from free-form feedback text. The
// first match wins. A missing score is not an error: it means the provider
// did not comply with the requested format, and nil is returned. The value is
// not clamped here; the bounded-field invariant lives in the persistence
// layer.
func ParseATSScore(feedback string) *float64 {
	m := scorePattern.FindStringSubmatch(feedback)
	if m == nil {
		return nil
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &val
}
