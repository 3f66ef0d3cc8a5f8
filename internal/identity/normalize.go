// Package identity resolves a student's typed first name, last name and
// classroom to one stored player record.
//
// Everything in this package is a pure function of its arguments: there is
// no I/O and no shared state, so it is safe to call from any goroutine.
package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameSeparators are punctuation characters students use between name parts
var nameSeparators = strings.NewReplacer(
	"-", " ",
	"'", " ",
	"’", " ",
	"_", " ",
	".", " ",
)

// Normalize folds a free-text identity field into a comparable form:
// lowercased, accents removed, separator punctuation turned into spaces and
// whitespace collapsed. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.ToLower(raw)

	// A transformer carries internal state, so build one per call.
	// Spacing accents such as "¨" or "ˆ" are modifier symbols or letters,
	// not combining marks, so they are removed too.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(func(r rune) bool {
		return unicode.In(r, unicode.Mn, unicode.Sk, unicode.Lm)
	})))
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	s = nameSeparators.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
