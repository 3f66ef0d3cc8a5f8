// Package roster is the entry point students and the teacher dashboard go
// through: it validates login requests, prefetches the classroom alias group
// from storage, resolves the submitted identity and records quiz progress.
package roster

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/classquiz/internal/dependencies/clock"
	"github.com/mcoot/classquiz/internal/dependencies/random"
	"github.com/mcoot/classquiz/internal/identity"
	"github.com/mcoot/classquiz/internal/metrics"
	"github.com/mcoot/classquiz/internal/model"
	"github.com/mcoot/classquiz/internal/storage"
)

var (
	ErrMissingFields       = errors.New("first name, last name and classroom are required")
	ErrInvalidProgressKind = errors.New("progress kind must be question or level")
)

// allClassrooms selects every student on the dashboard
const allClassrooms = "all"

// LoginRequest is what a student types on the login screen
type LoginRequest struct {
	FirstName string
	LastName  string
	Classroom string
}

// Publisher receives events for the live dashboard
type Publisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Service handles student logins, progress and the roster
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	events  Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger

	// mu serializes read-modify-write updates of player records
	mu sync.Mutex
}

// New creates a new roster Service
func New(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	events Publisher,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	if events == nil {
		events = nopPublisher{}
	}
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		events:  events,
		metrics: metrics,
		logger:  logger,
	}
}

// Login resolves the submitted identity to an existing player and stamps
// its last connection time.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*model.Player, error) {
	if req.FirstName == "" || req.LastName == "" || req.Classroom == "" {
		s.metrics.ObserveLogin(metrics.OutcomeInvalid)
		return nil, ErrMissingFields
	}

	key := identity.CanonicalizeClassroom(req.Classroom)
	players, err := s.storage.ListPlayersByClassroom(ctx, identity.AliasGroup(key))
	if err != nil {
		s.metrics.ObserveLogin(metrics.OutcomeError)
		return nil, fmt.Errorf("list classroom %q: %w", key, err)
	}

	candidates := make([]identity.Candidate, len(players))
	for i, p := range players {
		candidates[i] = identity.Candidate{
			ID:        string(p.ID),
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Classroom: p.Classroom,
		}
	}

	match, err := identity.Resolve(identity.Query{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Classroom: req.Classroom,
	}, candidates)
	if err != nil {
		s.metrics.ObserveLogin(metrics.OutcomeNotFound)
		s.logger.Info("login not resolved",
			"classroom", key,
			"candidates", len(candidates),
		)
		return nil, err
	}

	player := s.recordConnection(ctx, model.PlayerID(match.ID), players)

	s.metrics.ObserveLogin(metrics.OutcomeResolved)
	s.publish(model.EventStudentLoggedIn, player, model.StudentLoggedInPayload{
		FirstName: player.FirstName,
		LastName:  player.LastName,
	})
	s.logger.Info("student logged in",
		"player_id", player.ID,
		"classroom", player.Classroom,
	)
	return player, nil
}

// recordConnection stamps the resolved player's last connection. The record
// is re-read under the lock so progress saved since the candidate fetch is
// kept. Failures are logged and the fetched record is returned instead.
func (s *Service) recordConnection(ctx context.Context, id model.PlayerID, fetched []*model.Player) *model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err == nil {
		player.LastConnection = s.clock.Now()
		err = s.storage.SavePlayer(ctx, player)
		if err == nil {
			return player
		}
	}
	s.logger.Warn("failed to record last connection",
		"player_id", id,
		"error", err,
	)

	i := slices.IndexFunc(fetched, func(p *model.Player) bool { return p.ID == id })
	return fetched[i]
}

// ListStudents returns the students of a classroom (and its aliases), or
// every student for "" or "all", sorted by last name then first name.
func (s *Service) ListStudents(ctx context.Context, classroom string) ([]*model.Player, error) {
	players, err := s.listClassroom(ctx, classroom)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	slices.SortStableFunc(players, func(a, b *model.Player) int {
		return cmp.Or(
			cmp.Compare(identity.Normalize(a.LastName), identity.Normalize(b.LastName)),
			cmp.Compare(identity.Normalize(a.FirstName), identity.Normalize(b.FirstName)),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return players, nil
}

// listClassroom fetches every player for "" or "all", otherwise the alias
// group of the classroom's canonical key
func (s *Service) listClassroom(ctx context.Context, classroom string) ([]*model.Player, error) {
	if isAllClassrooms(classroom) {
		return s.storage.ListPlayers(ctx)
	}
	group := identity.AliasGroup(identity.CanonicalizeClassroom(classroom))
	return s.storage.ListPlayersByClassroom(ctx, group)
}

func isAllClassrooms(classroom string) bool {
	return classroom == "" || strings.EqualFold(classroom, allClassrooms)
}

func (s *Service) publish(eventType model.EventType, player *model.Player, payload any) {
	s.events.Publish(model.Event{
		Type:      eventType,
		Timestamp: s.clock.Now(),
		Classroom: player.Classroom,
		PlayerID:  player.ID,
		Payload:   payload,
	})
}
