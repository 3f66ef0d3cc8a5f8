package storage

import (
	"context"

	"github.com/mcoot/classquiz/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// ListPlayers returns every player, ordered by creation time then ID
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	// ListPlayersByClassroom returns players whose stored classroom key is
	// one of classrooms, ordered by creation time then ID
	ListPlayersByClassroom(ctx context.Context, classrooms []string) ([]*model.Player, error)
}
