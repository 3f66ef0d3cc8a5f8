package roster

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/classquiz/internal/model"
)

// Progress kinds accepted by RecordProgress
const (
	ProgressQuestion = "question"
	ProgressLevel    = "level"
)

// RecordProgress marks a question or level as validated for a player.
// It reports whether the value was new.
func (s *Service) RecordProgress(ctx context.Context, id model.PlayerID, kind, value string) (bool, error) {
	if kind != ProgressQuestion && kind != ProgressLevel {
		return false, ErrInvalidProgressKind
	}
	if value == "" {
		return false, ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return false, err
	}

	target := &player.ValidatedQuestions
	if kind == ProgressLevel {
		target = &player.ValidatedLevels
	}
	if slices.Contains(*target, value) {
		return false, nil
	}
	*target = append(*target, value)

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return false, fmt.Errorf("save progress: %w", err)
	}
	s.metrics.ObserveProgress(kind)
	s.publish(model.EventProgressRecorded, player, model.ProgressRecordedPayload{Kind: kind, Value: value})
	return true, nil
}

// GetProgress returns a player's validated levels and questions
func (s *Service) GetProgress(ctx context.Context, id model.PlayerID) (model.Progress, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return model.Progress{}, err
	}
	return player.Progress(), nil
}

// ResetPlayer clears all progress of one player
func (s *Service) ResetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	player.ValidatedQuestions = []string{}
	player.ValidatedLevels = []string{}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("reset player: %w", err)
	}
	s.metrics.ProgressResets.Inc()
	s.publish(model.EventProgressReset, player, model.ProgressResetPayload{})
	s.logger.Info("player progress reset", "player_id", id)
	return player, nil
}

// ResetAll clears the progress of every player and returns how many were reset
func (s *Service) ResetAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}

	for i, player := range players {
		player.ValidatedQuestions = []string{}
		player.ValidatedLevels = []string{}
		if err := s.storage.SavePlayer(ctx, player); err != nil {
			return i, fmt.Errorf("reset player %s: %w", player.ID, err)
		}
		s.metrics.ProgressResets.Inc()
		s.publish(model.EventProgressReset, player, model.ProgressResetPayload{})
	}

	s.logger.Info("all player progress reset", "count", len(players))
	return len(players), nil
}

// ResetChapter removes the given levels from a player's progress, together
// with every question of those levels. Question ids are "<levelID>-<n>".
func (s *Service) ResetChapter(ctx context.Context, id model.PlayerID, levelIDs []string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(levelIDs) == 0 {
		return player, nil
	}

	player.ValidatedLevels = slices.DeleteFunc(player.ValidatedLevels, func(level string) bool {
		return slices.Contains(levelIDs, level)
	})
	player.ValidatedQuestions = slices.DeleteFunc(player.ValidatedQuestions, func(question string) bool {
		return slices.ContainsFunc(levelIDs, func(level string) bool {
			return strings.HasPrefix(question, level+"-")
		})
	})

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("reset chapter: %w", err)
	}
	s.publish(model.EventProgressReset, player, model.ProgressResetPayload{Levels: levelIDs})
	s.logger.Info("chapter progress reset", "player_id", id, "levels", levelIDs)
	return player, nil
}
