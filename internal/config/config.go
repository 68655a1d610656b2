package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	AutoPlay        bool   `koanf:"autoplay"`
	Loop            bool   `koanf:"loop"`
	FreezeLastFrame bool   `koanf:"freeze_last_frame"` // keep last video frame visible while stopping
	BackgroundAudio bool   `koanf:"background_audio"`  // keep audio routing alive while backgrounded
	RenderTarget    string `koanf:"render_target"`     // "none" or "video"
	SkipSeconds     int    `koanf:"skip_seconds"`      // remote-control skip interval
	LogLevel        string `koanf:"log_level"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		AutoPlay:        true,
		BackgroundAudio: true,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.RenderTarget == "" {
		cfg.RenderTarget = "none"
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/community-app/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "community-app", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// SkipInterval returns the remote-control skip interval with the default
// applied.
func (c *Config) SkipInterval() time.Duration {
	if c.SkipSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.SkipSeconds) * time.Second
}
