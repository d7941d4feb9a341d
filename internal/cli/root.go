package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"kwikquiz/internal/app"
	"kwikquiz/internal/config"
	"kwikquiz/internal/infra/memory"
	infrapg "kwikquiz/internal/infra/postgres"
	infraredis "kwikquiz/internal/infra/redis"
	"kwikquiz/internal/store"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "kwikquiz",
		Short: "Create, share and play timed multiple-choice quizzes",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newRegisterCmd(&configPath))
	cmd.AddCommand(newLoginCmd(&configPath))
	cmd.AddCommand(newLogoutCmd(&configPath))
	cmd.AddCommand(newCreateCmd(&configPath))
	cmd.AddCommand(newPlayCmd(&configPath))
	cmd.AddCommand(newLeaderboardCmd(&configPath))
	cmd.AddCommand(newMigrateCmd(&configPath))
	return cmd
}

// openStore builds the configured persistence provider. The returned cleanup
// closes client connections; it is a no-op for the in-memory store.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return memory.NewKVStore(), func() {}, nil
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Redis.TTL, 0)
		return infraredis.NewKVStore(client, ttl), func() { _ = client.Close() }, nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		return infrapg.NewKVStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// buildService wires the application service from config.
func buildService(ctx context.Context, configPath string) (*app.Service, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	st, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return app.NewService(st), cleanup, nil
}
