// Package service hosts the story ledger HTTP process.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Jdubedition/dapp-owaat/internal/platform/timeouts"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/api/httpapi"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/app"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/auth"
	storysqlite "github.com/Jdubedition/dapp-owaat/internal/services/story/storage/sqlite"
)

// Config defines the inputs for the story ledger process.
type Config struct {
	HTTPAddr string
	DBPath   string
	// AdminID seeds the ledger administrator on first boot. It is ignored
	// once the ledger is initialized.
	AdminID string
	Grants  auth.Config
}

// Server owns the story ledger store and its HTTP surface.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      *storysqlite.Store
	ledger     *app.Ledger
	treasury   *app.Treasury
}

// NewServer opens the ledger store, runs one-time initialization when
// needed, and builds a configured HTTP server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "story.db")
	}

	store, err := openStore(dbPath)
	if err != nil {
		return nil, err
	}

	ledger := app.NewLedger(store)
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

	treasury := app.NewTreasury(store)
	handler := httpapi.NewHandler(ledger, treasury, cfg.Grants)
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		store:      store,
		ledger:     ledger,
		treasury:   treasury,
	}, nil
}

// Handler exposes the HTTP surface for in-process use.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Ledger exposes the story ledger application service.
func (s *Server) Ledger() *app.Ledger {
	return s.ledger
}

// Treasury exposes the treasury application service.
func (s *Server) Treasury() *app.Treasury {
	return s.treasury
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("story server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("story ledger listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
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

func openStore(path string) (*storysqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	store, err := storysqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open story sqlite store: %w", err)
	}
	return store, nil
}
