package identity

import (
	"regexp"
	"strings"
)

// gradeSuffix matches the French ordinal suffix written after a grade
// number: "6e", "2de", "2d". Alternatives are tried in this order.
var gradeSuffix = regexp.MustCompile(`[0-9](e|de|d)`)

// Canonical keys of the merged seconde sections. "2D" and "2de" both lose
// their trailing "d" to the grade suffix rule and canonicalize to "2", so
// the bare grade belongs to the merged group too.
var (
	mergedSeconde = []string{"2", "2C", "2D", "2CD"}
	mergedSixieme = []string{"6", "6D"}
)

// CanonicalizeClassroom maps a raw classroom label to the key classrooms
// are stored and looked up under, e.g. "2de" -> "2", "6e" -> "6",
// "2dA" -> "2A". Only the first suffix after a digit is removed.
func CanonicalizeClassroom(raw string) string {
	s := Normalize(raw)

	if loc := gradeSuffix.FindStringSubmatchIndex(s); loc != nil {
		s = s[:loc[2]] + s[loc[3]:]
	}

	return strings.ToUpper(s)
}

// AliasGroup returns the canonical keys to search for a canonical key.
// The returned slice is freshly allocated and may be modified by the caller.
func AliasGroup(key string) []string {
	switch key {
	case "":
		return nil
	case "2", "2C", "2D", "2CD":
		return append([]string(nil), mergedSeconde...)
	case "6", "6D":
		return append([]string(nil), mergedSixieme...)
	default:
		return []string{key}
	}
}
