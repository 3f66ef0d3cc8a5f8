package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mcoot/classquiz/internal/factory"
	pgstorage "github.com/mcoot/classquiz/internal/storage/postgres"
	redisstorage "github.com/mcoot/classquiz/internal/storage/redis"
)

// Config holds server configuration
type Config struct {
	bind            string
	port            int
	storage         string
	redisURL        string
	redisPrefix     string
	postgresDSN     string
	roster          string
	logLevel        string
	shutdownTimeout time.Duration
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	switch c.storage {
	case factory.StorageTypeMemory:
	case factory.StorageTypeRedis:
		if c.redisURL == "" {
			return errors.New("--redis-url is required when --storage=redis")
		}
	case factory.StorageTypePostgres:
		if c.postgresDSN == "" {
			return errors.New("--postgres-dsn is required when --storage=postgres")
		}
	default:
		return fmt.Errorf("invalid storage %q: must be memory, redis or postgres", c.storage)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}
	return level, nil
}

// factoryConfig translates flags into the application factory config
func (c *Config) factoryConfig(logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.storage,
	}
	switch c.storage {
	case factory.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.redisURL
		if c.redisPrefix != "" {
			redisCfg.KeyPrefix = c.redisPrefix
		}
		fc.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = c.postgresDSN
		fc.PostgresConfig = &pgCfg
	}
	return fc
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CLASSQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Classroom quiz backend: student login, progress and teacher dashboard.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: CLASSQUIZ_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CLASSQUIZ_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeMemory, "storage backend: memory, redis or postgres (env: CLASSQUIZ_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL (env: CLASSQUIZ_REDIS_URL)")
	fs.StringVar(&cfg.redisPrefix, "redis-prefix", "", "prefix for redis keys (env: CLASSQUIZ_REDIS_PREFIX)")
	fs.StringVar(&cfg.postgresDSN, "postgres-dsn", "", "postgres connection string (env: CLASSQUIZ_POSTGRES_DSN)")
	fs.StringVar(&cfg.roster, "roster", "", "CSV or YAML roster to import at startup (env: CLASSQUIZ_ROSTER)")
	fs.StringVar(&cfg.logLevel, "log-level", "info", "log level: debug, info, warn or error (env: CLASSQUIZ_LOG_LEVEL)")
	fs.DurationVar(&cfg.shutdownTimeout, "shutdown-timeout", 30*time.Second, "time allowed for in-flight requests on shutdown (env: CLASSQUIZ_SHUTDOWN_TIMEOUT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
