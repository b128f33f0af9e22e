// Package config loads the frame configuration from the environment
package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultListenAddr         = "0.0.0.0:8080"
	defaultScanInterval       = 24 * time.Hour
	defaultRemoteSyncInterval = time.Hour
	defaultAccessSettingsURL  = "/access/settings"
)

type Config struct {
	// RootPath holds photos.db, the photo library and the cloud mirror.
	RootPath   string
	ListenAddr string
	LogLevel   slog.Level

	ScanInterval time.Duration

	// S3Bucket enables the remote sync when set.
	S3Bucket           string
	AWSProfile         string
	RemoteSyncInterval time.Duration

	// AccessSettingsURL is the deep link shown when library access is denied.
	AccessSettingsURL string
}

func (c *Config) LibraryPath() string {
	return filepath.Join(c.RootPath, "photos")
}

func (c *Config) CloudPath() string {
	return filepath.Join(c.RootPath, "photos", "cloud")
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.RootPath, "photos.db")
}

func (c *Config) RemoteEnabled() bool {
	return c.S3Bucket != ""
}

// Load reads DPF_* variables, optionally preloaded from the given .env files.
// Missing .env files are ignored.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("unable to load env file", "file", f, "error", err)
		}
	}

	rootPath := os.Getenv("DPF_ROOT_PATH")
	if rootPath == "" {
		return nil, errors.New("DPF_ROOT_PATH environment variable is required")
	}

	cfg := &Config{
		RootPath:           rootPath,
		ListenAddr:         envOr("DPF_LISTEN_ADDR", defaultListenAddr),
		LogLevel:           parseLevel(os.Getenv("DPF_LOG_LEVEL")),
		ScanInterval:       envDuration("DPF_SCAN_INTERVAL", defaultScanInterval),
		S3Bucket:           os.Getenv("DPF_S3_BUCKET"),
		AWSProfile:         os.Getenv("DPF_AWS_PROFILE"),
		RemoteSyncInterval: envDuration("DPF_REMOTE_SYNC_INTERVAL", defaultRemoteSyncInterval),
		AccessSettingsURL:  envOr("DPF_ACCESS_SETTINGS_URL", defaultAccessSettingsURL),
	}

	if cfg.RemoteEnabled() && cfg.AWSProfile == "" {
		return nil, errors.New("no aws profile provided in environment variable DPF_AWS_PROFILE")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration accepts Go durations ("90s") or plain seconds ("90").
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("unable to parse duration, using default", "key", key, "value", v, "default", def)
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
