package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/classquiz/internal/dependencies/clock"
	"github.com/mcoot/classquiz/internal/dependencies/random"
	"github.com/mcoot/classquiz/internal/live"
	"github.com/mcoot/classquiz/internal/metrics"
	"github.com/mcoot/classquiz/internal/services/roster"
	"github.com/mcoot/classquiz/internal/storage"
	"github.com/mcoot/classquiz/internal/storage/memory"
	pgstorage "github.com/mcoot/classquiz/internal/storage/postgres"
	redisstorage "github.com/mcoot/classquiz/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock   clock.Clock
	Random  random.Random
	Metrics *metrics.Metrics

	// Services
	RosterService *roster.Service
	HubManager    *live.HubManager

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds PostgreSQL settings (required if StorageType is "postgres")
	PostgresConfig *pgstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var (
		store  storage.Storage
		closer io.Closer
	)
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store, closer = redisStore, redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := pgstorage.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store, closer = pgStore, pgStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'postgres'", storageType)
	}

	app := newWithDependencies(store, clock.New(), random.New(), metrics.New(), logger)
	app.closer = closer
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	m *metrics.Metrics,
	logger *slog.Logger,
) *App {
	hubManager := live.NewHubManager(logger)
	broadcaster := live.NewBroadcaster(hubManager, logger)
	rosterService := roster.New(store, clk, rnd, broadcaster, m, logger)

	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		Metrics:       m,
		RosterService: rosterService,
		HubManager:    hubManager,
	}
}

// Close disconnects live dashboards and releases the storage backend's connections
func (a *App) Close() error {
	a.HubManager.Close()
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
