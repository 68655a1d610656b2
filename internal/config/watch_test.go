package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("loop = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 1)
	stop, err := Watch(path, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch() = %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("loop = true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changed:
		if !cfg.Loop {
			t.Errorf("reloaded config = %+v, want loop enabled", cfg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 1)
	stop, err := Watch(path, func(cfg *Config) { changed <- cfg })
	if err != nil {
		t.Fatalf("Watch() = %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(reloadDebounce * 3):
	}
}
