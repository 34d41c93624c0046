package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Channel.DefaultBufferSize == 0 {
		t.Fatal("Default() should set a non-zero buffer size")
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conduit.yaml")
	contents := []byte(`
channel:
  default_buffer_size: 64
  select_wait_timeout: 2s
logging:
  level: debug
  format: json
`)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Channel.DefaultBufferSize != 64 {
		t.Fatalf("DefaultBufferSize = %d, want 64", cfg.Channel.DefaultBufferSize)
	}
	if cfg.Channel.SelectWaitTimeout != 2*time.Second {
		t.Fatalf("SelectWaitTimeout = %v, want 2s", cfg.Channel.SelectWaitTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/conduit.yaml"); err == nil {
		t.Fatal("Load should fail for a missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conduit.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	t.Setenv("CONDUIT_LOG_LEVEL", "warn")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("Logging.Level = %q, want warn (env override)", cfg.Logging.Level)
	}
}
