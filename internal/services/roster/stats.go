package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/mcoot/classquiz/internal/identity"
)

// ClassStats summarises a classroom for the teacher dashboard
type ClassStats struct {
	Classroom     string
	TotalStudents int
	// ActiveToday counts students whose last connection falls on the
	// current UTC day
	ActiveToday int
}

// ClassStats counts the students of a classroom (and its aliases), or of
// the whole school for "" or "all", and how many connected today.
func (s *Service) ClassStats(ctx context.Context, classroom string) (ClassStats, error) {
	players, err := s.listClassroom(ctx, classroom)
	if err != nil {
		return ClassStats{}, fmt.Errorf("class stats: %w", err)
	}

	stats := ClassStats{
		Classroom:     allClassrooms,
		TotalStudents: len(players),
	}
	if !isAllClassrooms(classroom) {
		stats.Classroom = identity.CanonicalizeClassroom(classroom)
	}

	today := s.clock.Now().UTC().Truncate(24 * time.Hour)
	for _, p := range players {
		if p.LastConnection.IsZero() {
			continue
		}
		if p.LastConnection.UTC().Truncate(24 * time.Hour).Equal(today) {
			stats.ActiveToday++
		}
	}
	return stats, nil
}
