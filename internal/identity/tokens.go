package identity

import (
	"strings"
	"unicode/utf8"
)

// minTokenLength filters stray initials out of name tokens
const minTokenLength = 2

// Tokenize normalizes a name and splits it into tokens of at least two
// characters. "Jean-Luc" and "Jean Luc" yield the same tokens.
func Tokenize(name string) []string {
	fields := strings.Fields(Normalize(name))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Matches reports whether two token lists share at least one token.
// An empty list never matches anything, including another empty list.
func Matches(input, candidate []string) bool {
	if len(input) == 0 || len(candidate) == 0 {
		return false
	}

	set := make(map[string]struct{}, len(candidate))
	for _, tok := range candidate {
		set[tok] = struct{}{}
	}
	for _, tok := range input {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}
