package redis

import (
	"fmt"

	"github.com/mcoot/classquiz/internal/model"
)

// keySpace generates the Redis keys under one prefix
type keySpace string

// player returns the Redis key for a Player
func (k keySpace) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", k, id)
}

// allPlayers returns the Redis key for the SET of every player ID
func (k keySpace) allPlayers() string {
	return fmt.Sprintf("%s:idx:players", k)
}

// classroom returns the Redis key for the SET of player IDs in a classroom
func (k keySpace) classroom(key string) string {
	return fmt.Sprintf("%s:idx:classroom:%s", k, key)
}
