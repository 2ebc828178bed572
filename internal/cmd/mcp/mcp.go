// Package mcp parses MCP command flags and runs the stdio tool server.
package mcp

import (
	"context"
	"flag"

	platformcmd "github.com/Jdubedition/dapp-owaat/internal/platform/cmd"
	"github.com/Jdubedition/dapp-owaat/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath    string `env:"OWAAT_STORY_DB_PATH" envDefault:"data/story.db"`
	Transport string `env:"OWAAT_MCP_TRANSPORT" envDefault:"stdio"`
	AdminID   string `env:"OWAAT_ADMIN_ID"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the story ledger sqlite database")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio")
	fs.StringVar(&cfg.AdminID, "admin-id", cfg.AdminID, "administrator identity for first-boot initialization")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		return service.Run(ctx, service.Config{
			DBPath:    cfg.DBPath,
			Transport: cfg.Transport,
			AdminID:   cfg.AdminID,
		})
	})
}
