package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var Version = "dev"

const (
	DefaultDownloadAPI = "https://api-telegram-bot-l4m4.onrender.com/api/v1/download"
	DefaultConfigFile  = "config.json"
	DefaultHTTPAddr    = ":8080"

	FetchTimeout      = 180 * time.Second
	InteractionWindow = 15 * time.Minute
	AlertCooldown     = 5 * time.Second
)

type Config struct {
	Token string
	AppID string

	DownloadAPIURL string
	FetchTimeout   time.Duration

	HTTPAddr    string
	CORSOrigins []string

	WebhookURL string
	PingUserID string

	LogLevel string
	LogJSON  bool
}

// fileConfig mirrors the static config.json blob. Environment variables win
// over anything set here.
type fileConfig struct {
	Token          string `json:"token"`
	AppID          string `json:"appId"`
	DownloadAPIURL string `json:"downloadApiUrl"`
	WebhookURL     string `json:"webhookUrl"`
}

func Load() (*Config, error) {
	var fc fileConfig
	path := envOrDefault("CONFIG_FILE", DefaultConfigFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg := &Config{
		Token:          envOrDefault("DISCORD_TOKEN", fc.Token),
		AppID:          envOrDefault("DISCORD_APP_ID", fc.AppID),
		DownloadAPIURL: envOrDefault("DOWNLOAD_API_URL", orDefault(fc.DownloadAPIURL, DefaultDownloadAPI)),
		FetchTimeout:   FetchTimeout,
		HTTPAddr:       DefaultHTTPAddr,
		WebhookURL:     envOrDefault("DISCORD_WEBHOOK_URL", fc.WebhookURL),
		PingUserID:     os.Getenv("DISCORD_PING_USER_ID"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
	}

	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("FETCH_TIMEOUT_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec < 1 {
			return nil, fmt.Errorf("invalid FETCH_TIMEOUT_SEC %q", v)
		}
		cfg.FetchTimeout = time.Duration(sec) * time.Second
	}
	cfg.LogJSON, _ = strconv.ParseBool(os.Getenv("LOG_JSON"))
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))

	if cfg.Token == "" {
		return nil, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.AppID == "" {
		return nil, errors.New("DISCORD_APP_ID is required")
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
