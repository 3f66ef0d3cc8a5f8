package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mcoot/classquiz/internal/model"
	"github.com/mcoot/classquiz/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id                  TEXT PRIMARY KEY,
	first_name          TEXT NOT NULL,
	last_name           TEXT NOT NULL,
	classroom           TEXT NOT NULL,
	validated_questions TEXT[] NOT NULL DEFAULT '{}',
	validated_levels    TEXT[] NOT NULL DEFAULT '{}',
	score               INTEGER NOT NULL DEFAULT 0,
	best_score          INTEGER NOT NULL DEFAULT 0,
	last_connection     TIMESTAMPTZ,
	created_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS players_classroom_idx ON players (classroom);
`

const playerColumns = `id, first_name, last_name, classroom, validated_questions, validated_levels,
	score, best_score, last_connection, created_at`

// Storage persists players in PostgreSQL.
// It is pure I/O; matching and progress rules live in the services.
type Storage struct {
	db *sql.DB
}

// New opens a connection pool, verifies it and ensures the schema exists
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := NewWithDB(db)
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing database handle (for testing)
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// EnsureSchema creates the players table if it does not exist
func (s *Storage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			classroom = EXCLUDED.classroom,
			validated_questions = EXCLUDED.validated_questions,
			validated_levels = EXCLUDED.validated_levels,
			score = EXCLUDED.score,
			best_score = EXCLUDED.best_score,
			last_connection = EXCLUDED.last_connection
	`
	_, err := s.db.ExecContext(ctx, query,
		string(player.ID),
		player.FirstName,
		player.LastName,
		player.Classroom,
		pq.Array(nonNil(player.ValidatedQuestions)),
		pq.Array(nonNil(player.ValidatedLevels)),
		player.Score,
		player.BestScore,
		nullTime(player.LastConnection),
		player.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	player, err := scanPlayer(s.db.QueryRowContext(ctx, query, string(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY created_at, id`
	return s.queryPlayers(ctx, query)
}

func (s *Storage) ListPlayersByClassroom(ctx context.Context, classrooms []string) ([]*model.Player, error) {
	if len(classrooms) == 0 {
		return []*model.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE classroom = ANY($1) ORDER BY created_at, id`
	return s.queryPlayers(ctx, query, pq.Array(classrooms))
}

func (s *Storage) queryPlayers(ctx context.Context, query string, args ...any) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	players := []*model.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (*model.Player, error) {
	var (
		p              model.Player
		id             string
		lastConnection sql.NullTime
	)
	err := row.Scan(
		&id,
		&p.FirstName,
		&p.LastName,
		&p.Classroom,
		pq.Array(&p.ValidatedQuestions),
		pq.Array(&p.ValidatedLevels),
		&p.Score,
		&p.BestScore,
		&lastConnection,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = model.PlayerID(id)
	if lastConnection.Valid {
		p.LastConnection = lastConnection.Time
	}
	return &p, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
