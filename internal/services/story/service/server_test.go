package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/Jdubedition/dapp-owaat/internal/platform/errors"
	"github.com/Jdubedition/dapp-owaat/internal/services/story/auth"
)

func testGrants(t *testing.T) auth.Config {
	t.Helper()
	publicKey, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return auth.Config{Issuer: "owaat-test", Audience: "story-ledger", Key: publicKey}
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected missing http address error")
	}
}

func TestNewServerInitializesLedgerOnce(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "story.db")
	cfg := Config{
		HTTPAddr: "localhost:0",
		DBPath:   dbPath,
		AdminID:  "admin-1",
		Grants:   testGrants(t),
	}

	server, err := NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	story, err := server.Ledger().GetStory(context.Background(), 0)
	if err != nil {
		t.Fatalf("get seed story: %v", err)
	}
	if story.Title != "The" {
		t.Fatalf("seed title = %q, want The", story.Title)
	}
	server.Close()

	// A restart against the same database must not re-run initialization,
	// even with a different admin id configured.
	cfg.AdminID = "admin-2"
	server, err = NewServer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("reopen server: %v", err)
	}
	defer server.Close()

	_, err = server.Treasury().Balance(context.Background(), "admin-2")
	if got := apperrors.GetCode(err); got != apperrors.CodeTreasuryUnauthorized {
		t.Fatalf("code = %q, want unauthorized for admin-2", got)
	}
	if _, err := server.Treasury().Balance(context.Background(), "admin-1"); err != nil {
		t.Fatalf("original admin rejected: %v", err)
	}
}

func TestNewServerRequiresAdminForFirstBoot(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{
		HTTPAddr: "localhost:0",
		DBPath:   filepath.Join(t.TempDir(), "story.db"),
		Grants:   testGrants(t),
	})
	if err == nil {
		t.Fatal("expected missing admin id error")
	}
}

func TestListenAndServeStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "story.db"),
		AdminID:  "admin-1",
		Grants:   testGrants(t),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.ListenAndServe(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("listen and serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}
