package story

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("story", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != "data/story.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("OWAAT_STORY_ADDR", "localhost:9090")
	t.Setenv("OWAAT_STORY_DB_PATH", "/tmp/other.db")
	t.Setenv("OWAAT_ADMIN_ID", "admin-env")

	fs := flag.NewFlagSet("story", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:9090" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.AdminID != "admin-env" {
		t.Fatalf("expected env admin id, got %q", cfg.AdminID)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	t.Setenv("OWAAT_STORY_ADDR", "localhost:9090")

	fs := flag.NewFlagSet("story", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-addr", "localhost:7070", "-admin-id", "admin-flag"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "localhost:7070" {
		t.Fatalf("expected flag addr to win, got %q", cfg.Addr)
	}
	if cfg.AdminID != "admin-flag" {
		t.Fatalf("expected flag admin id, got %q", cfg.AdminID)
	}
}
