package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/classquiz/internal/model"
	"github.com/mcoot/classquiz/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
//
// Each player is a JSON string; a SET per classroom key and one SET of all
// player IDs serve the listing queries.
type Storage struct {
	client *redis.Client
	keys   keySpace
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		keys:   keySpace(prefix),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// A classroom change has to drop the player from the old index
	previous, err := s.GetPlayer(ctx, player.ID)
	if err != nil && !errors.Is(err, model.ErrPlayerNotFound) {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.keys.player(player.ID), data, 0)
	pipe.SAdd(ctx, s.keys.allPlayers(), string(player.ID))
	pipe.SAdd(ctx, s.keys.classroom(player.Classroom), string(player.ID))
	if previous != nil && previous.Classroom != player.Classroom {
		pipe.SRem(ctx, s.keys.classroom(previous.Classroom), string(player.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, s.keys.player(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, s.keys.allPlayers()).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchPlayers(ctx, ids)
}

func (s *Storage) ListPlayersByClassroom(ctx context.Context, classrooms []string) ([]*model.Player, error) {
	if len(classrooms) == 0 {
		return []*model.Player{}, nil
	}

	indexKeys := make([]string, len(classrooms))
	for i, c := range classrooms {
		indexKeys[i] = s.keys.classroom(c)
	}

	ids, err := s.client.SUnion(ctx, indexKeys...).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchPlayers(ctx, ids)
}

// fetchPlayers loads players by ID with a single MGET and sorts them
func (s *Storage) fetchPlayers(ctx context.Context, ids []string) ([]*model.Player, error) {
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	playerKeys := make([]string, len(ids))
	for i, id := range ids {
		playerKeys[i] = s.keys.player(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Index entry without a record
		}
		var player model.Player
		if err := json.Unmarshal([]byte(str), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	model.SortByCreation(players)
	return players, nil
}
