package factory

import (
	"context"
	"time"

	"github.com/mcoot/classquiz/internal/dependencies/mocks"
	"github.com/mcoot/classquiz/internal/metrics"
	"github.com/mcoot/classquiz/internal/services/roster"
	"github.com/mcoot/classquiz/internal/storage/memory"
	"github.com/mcoot/classquiz/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, metrics.New(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// SeedTestRoster enrolls a small set of students across the merged seconde
// sections, a sixieme and a regular classroom. Ids are id-1 to id-6 in
// the order listed.
func (t *TestApp) SeedTestRoster(ctx context.Context) error {
	_, err := t.RosterService.Import(ctx, []roster.Entry{
		{FirstName: "Jean-Pierre", LastName: "Martin", Classroom: "2CD"},
		{FirstName: "Anna", LastName: "Blanc", Classroom: "2C"},
		{FirstName: "Adèle", LastName: "Dupont", Classroom: "2D"},
		{FirstName: "Lina", LastName: "Petit", Classroom: "6D"},
		{FirstName: "Émile", LastName: "Zola", Classroom: "5A"},
		{FirstName: "Jean", LastName: "Martin", Classroom: "5A"},
	})
	return err
}
