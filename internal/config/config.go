// Package config loads skylark's settings from ~/.config/skylark/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures playback settings handed to the engine and the session
// loop.
type Config struct {
	MPVPath         string `toml:"mpv_path"`
	UserAgent       string `toml:"user_agent"`
	Proxy           string `toml:"proxy"`
	Volume          int    `toml:"volume"`
	ShutdownMinutes int    `toml:"shutdown_minutes"`
	PollMS          int    `toml:"poll_ms"`
}

const (
	defaultConfigPath = "~/.config/skylark/config.toml"
	defaultVolume     = 40
	defaultPollMS     = 300

	minVolume = 0
	maxVolume = 130
)

// Load locates and parses the config, falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Volume: defaultVolume, PollMS: defaultPollMS}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.MPVPath = strings.TrimSpace(cfg.MPVPath)
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	cfg.Proxy = strings.TrimSpace(cfg.Proxy)
	if cfg.Volume == 0 {
		cfg.Volume = defaultVolume
	}
	if cfg.PollMS <= 0 {
		cfg.PollMS = defaultPollMS
	}
	return cfg, nil
}

// MPVArgs builds the extra playback arguments the engine receives on top
// of the non-negotiable contract flags.
func (c Config) MPVArgs() []string {
	var args []string
	if c.UserAgent != "" {
		args = append(args, "--user-agent="+c.UserAgent)
	}
	if c.Proxy != "" {
		args = append(args, "--http-proxy="+c.Proxy)
	}
	vol := c.Volume
	if vol < minVolume {
		vol = minVolume
	}
	if vol > maxVolume {
		vol = maxVolume
	}
	args = append(args, fmt.Sprintf("--volume=%d", vol))
	if c.ShutdownMinutes > 0 {
		args = append(args, fmt.Sprintf("--length=%d", c.ShutdownMinutes*60))
	}
	return args
}

// PollInterval returns the session tick interval.
func (c Config) PollInterval() time.Duration {
	ms := c.PollMS
	if ms <= 0 {
		ms = defaultPollMS
	}
	return time.Duration(ms) * time.Millisecond
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
