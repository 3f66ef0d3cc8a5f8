package identity

import "errors"

// ErrNoMatch is returned when no candidate matches a query. It is an
// expected outcome of a login attempt, not a fault.
var ErrNoMatch = errors.New("no matching student")

// Query is what a student types on the login screen
type Query struct {
	FirstName string
	LastName  string
	Classroom string
}

// Candidate is the identity part of a stored player record
type Candidate struct {
	ID        string
	FirstName string
	LastName  string
	Classroom string
}

// Resolve returns the first candidate whose first-name tokens and
// last-name tokens both overlap the query's.
//
// Candidates are expected to be prefiltered to the query's classroom alias
// group and supplied in a stable order: when several candidates match, the
// first one wins. Resolve does not modify candidates.
func Resolve(q Query, candidates []Candidate) (Candidate, error) {
	if CanonicalizeClassroom(q.Classroom) == "" {
		return Candidate{}, ErrNoMatch
	}

	firstTokens := Tokenize(q.FirstName)
	lastTokens := Tokenize(q.LastName)
	if len(firstTokens) == 0 || len(lastTokens) == 0 {
		return Candidate{}, ErrNoMatch
	}

	for _, c := range candidates {
		if Matches(firstTokens, Tokenize(c.FirstName)) && Matches(lastTokens, Tokenize(c.LastName)) {
			return c, nil
		}
	}

	return Candidate{}, ErrNoMatch
}
