package service

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewServerInitializesFreshStore(t *testing.T) {
	t.Parallel()

	server, err := NewServer(context.Background(), Config{
		DBPath:  filepath.Join(t.TempDir(), "story.db"),
		AdminID: "admin-1",
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	server.Close()
}

func TestNewServerRequiresAdminForFreshStore(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{
		DBPath: filepath.Join(t.TempDir(), "story.db"),
	})
	if err == nil {
		t.Fatal("expected missing admin id error")
	}
}

func TestNewServerReopensInitializedStore(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "story.db")
	server, err := NewServer(context.Background(), Config{DBPath: dbPath, AdminID: "admin-1"})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	server.Close()

	// No admin id needed once the ledger is initialized.
	server, err = NewServer(context.Background(), Config{DBPath: dbPath})
	if err != nil {
		t.Fatalf("reopen server: %v", err)
	}
	server.Close()
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	t.Parallel()

	err := Run(context.Background(), Config{
		DBPath:    filepath.Join(t.TempDir(), "story.db"),
		AdminID:   "admin-1",
		Transport: "http",
	})
	if err == nil {
		t.Fatal("expected unsupported transport error")
	}
}
