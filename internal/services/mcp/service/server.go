// Package service assembles and runs the MCP server for the story ledger.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Jdubedition/dapp-owaat/internal/services/mcp/domain"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	storysqlite "github.com/Jdubedition/dapp-owaat/internal/services/story/storage/sqlite"
)

// serverVersion identifies the MCP server version.
const serverVersion = "0.1.0"

// TransportStdio serves MCP over stdin/stdout for local tool hosts.
const TransportStdio = "stdio"

// Config defines the inputs for the MCP process.
type Config struct {
	DBPath    string
	Transport string
	// AdminID seeds the ledger administrator when the store has never been
	// initialized. It is ignored otherwise.
	AdminID string
}

// Server wires story ledger tools into an MCP server over a shared store.
type Server struct {
	mcpServer *mcp.Server
	store     *storysqlite.Store
}

// NewServer opens the ledger store and registers every story and treasury tool.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "story.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := storysqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open story sqlite store: %w", err)
	}

	ledger := app.NewLedger(store)
	treasury := app.NewTreasury(store)

	initialized, err := ledger.Initialized(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("check ledger state: %w", err)
	}
	if !initialized {
		adminID := strings.TrimSpace(cfg.AdminID)
		if adminID == "" {
			_ = store.Close()
			return nil, errors.New("admin id is required to initialize the ledger")
		}
		if err := ledger.Initialize(ctx, adminID); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("initialize ledger: %w", err)
		}
		log.Printf("story ledger initialized with administrator %s", adminID)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: "owaat", Version: serverVersion}, nil)
	registerTools(mcpServer, ledger, treasury)

	return &Server{mcpServer: mcpServer, store: store}, nil
}

func registerTools(server *mcp.Server, ledger *app.Ledger, treasury *app.Treasury) {
	mcp.AddTool(server, domain.StoryCreateTool(), domain.StoryCreateHandler(ledger))
	mcp.AddTool(server, domain.StoryAddWordTool(), domain.StoryAddWordHandler(ledger))
	mcp.AddTool(server, domain.StoryTitleAddWordTool(), domain.StoryTitleAddWordHandler(ledger))
	mcp.AddTool(server, domain.StoryGetTool(), domain.StoryGetHandler(ledger))
	mcp.AddTool(server, domain.StoryListTool(), domain.StoryListHandler(ledger))
	mcp.AddTool(server, domain.TreasuryDepositTool(), domain.TreasuryDepositHandler(ledger))
	mcp.AddTool(server, domain.TreasuryBalanceTool(), domain.TreasuryBalanceHandler(treasury))
	mcp.AddTool(server, domain.TreasuryWithdrawTool(), domain.TreasuryWithdrawHandler(treasury))
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve mcp: %w", err)
	}
	return nil
}

// Close releases the store held by the server.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close story store: %v", err)
		}
	}
}

// Run is the service entrypoint for MCP and blocks until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := NewServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer server.Close()

	return server.Serve(ctx)
}
