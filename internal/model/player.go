package model

import (
	"cmp"
	"slices"
	"time"
)

// PlayerID uniquely identifies a student across the system
type PlayerID string

// Player is a student enrolled in a classroom, with their quiz progress
type Player struct {
	ID        PlayerID
	FirstName string
	LastName  string
	Classroom string // canonical classroom key

	ValidatedQuestions []string
	ValidatedLevels    []string

	// Score fields are kept for the dashboard; nothing here computes them
	Score     int
	BestScore int

	LastConnection time.Time
	CreatedAt      time.Time
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	c.ValidatedQuestions = slices.Clone(p.ValidatedQuestions)
	c.ValidatedLevels = slices.Clone(p.ValidatedLevels)
	return &c
}

// Progress returns the player's validated levels and questions
func (p *Player) Progress() Progress {
	return Progress{
		ValidatedLevels:    slices.Clone(p.ValidatedLevels),
		ValidatedQuestions: slices.Clone(p.ValidatedQuestions),
	}
}

// Progress is the quiz progress of one player
type Progress struct {
	ValidatedLevels    []string
	ValidatedQuestions []string
}

// SortByCreation orders players by creation time, then ID.
// Storage backends return candidates in this order so that identity
// resolution is reproducible.
func SortByCreation(players []*Player) {
	slices.SortStableFunc(players, func(a, b *Player) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
