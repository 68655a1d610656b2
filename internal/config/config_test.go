package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !cfg.AutoPlay {
		t.Error("AutoPlay should default to true")
	}
	if !cfg.BackgroundAudio {
		t.Error("BackgroundAudio should default to true")
	}
	if cfg.Loop || cfg.FreezeLastFrame {
		t.Errorf("loop/freeze should default off, got %+v", cfg)
	}
	if cfg.RenderTarget != "none" {
		t.Errorf("RenderTarget = %q, want none", cfg.RenderTarget)
	}
	if cfg.SkipInterval() != 15*time.Second {
		t.Errorf("SkipInterval() = %v, want 15s", cfg.SkipInterval())
	}
}

func TestLoad_FromWorkingDirectory(t *testing.T) {
	t.Chdir(t.TempDir())

	data := []byte(`
autoplay = false
loop = true
freeze_last_frame = true
background_audio = false
render_target = "video"
skip_seconds = 30
log_level = "debug"
`)
	if err := os.WriteFile("config.toml", data, 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.AutoPlay {
		t.Error("AutoPlay should be overridden to false")
	}
	if !cfg.Loop || !cfg.FreezeLastFrame {
		t.Errorf("loop/freeze not loaded: %+v", cfg)
	}
	if cfg.BackgroundAudio {
		t.Error("BackgroundAudio should be overridden to false")
	}
	if cfg.RenderTarget != "video" {
		t.Errorf("RenderTarget = %q, want video", cfg.RenderTarget)
	}
	if cfg.SkipInterval() != 30*time.Second {
		t.Errorf("SkipInterval() = %v, want 30s", cfg.SkipInterval())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("config.toml", []byte(""), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoad_InvalidToml(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.WriteFile("config.toml", []byte("invalid = [[["), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() expected error for invalid TOML, got nil")
	}
}

func TestSkipInterval_IgnoresNonPositive(t *testing.T) {
	cfg := &Config{SkipSeconds: -5}
	if cfg.SkipInterval() != 15*time.Second {
		t.Errorf("SkipInterval() = %v, want default 15s", cfg.SkipInterval())
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}
}
