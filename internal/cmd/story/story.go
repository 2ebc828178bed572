// Package story parses story ledger command flags and runs the HTTP process.
package story

import (
	"context"
	"flag"
	"fmt"

	platformcmd "github.com/Jdubedition/dapp-owaat/internal/platform/cmd"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/auth"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/service"
)

// Config holds story ledger command configuration.
type Config struct {
	Addr    string `env:"OWAAT_STORY_ADDR"    envDefault:":8080"`
	DBPath  string `env:"OWAAT_STORY_DB_PATH" envDefault:"data/story.db"`
	AdminID string `env:"OWAAT_ADMIN_ID"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the story ledger sqlite database")
	fs.StringVar(&cfg.AdminID, "admin-id", cfg.AdminID, "administrator identity for first-boot initialization")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the story ledger HTTP server.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceStory, func(ctx context.Context) error {
		grants, err := auth.LoadConfigFromEnv(nil)
		if err != nil {
			return fmt.Errorf("load grant config: %w", err)
		}

		server, err := service.NewServer(ctx, service.Config{
			HTTPAddr: cfg.Addr,
			DBPath:   cfg.DBPath,
			AdminID:  cfg.AdminID,
			Grants:   grants,
		})
		if err != nil {
			return fmt.Errorf("init story server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve story: %w", err)
		}
		return nil
	})
}
