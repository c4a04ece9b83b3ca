package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Engine.HistoryWindow != 3000 || cfg.Engine.ContextDepth != 5 || cfg.Engine.Limit != 5 {
		t.Errorf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if cfg.ListenAddr() != "127.0.0.1:37780" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: /tmp/journal.db
engine:
  history_window: 500
  context_depth: 3
location:
  static: "35.0 139.0 0"
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CARDLOG_PORT", "9100")
	t.Setenv("CARDLOG_GEO", "1 2 3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/journal.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Engine.HistoryWindow != 500 || cfg.Engine.ContextDepth != 3 || cfg.Engine.Limit != 5 {
		t.Errorf("Engine = %+v", cfg.Engine)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env should override port, got %d", cfg.Server.Port)
	}
	if cfg.Location.Static != "1 2 3" {
		t.Errorf("env should override geo, got %q", cfg.Location.Static)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CARDLOG_LOG_LEVEL=debug\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// godotenv never overrides variables that already exist
	t.Setenv("CARDLOG_LOG_LEVEL", "")
	os.Unsetenv("CARDLOG_LOG_LEVEL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	tests := []struct {
		name string
		yaml string
		env  string
		want string
	}{
		{"bad yaml", "engine: [", "", "failed to parse"},
		{"zero window", "engine:\n  history_window: 0\n", "", "history_window"},
		{"bad port env", "", "abc", "CARDLOG_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			t.Setenv("CARDLOG_PORT", tt.env)

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
