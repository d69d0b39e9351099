package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the application, loaded from
// environment variables. Centralizing settings here keeps deployment
// concerns out of the rest of the codebase.
type Config struct {
	// --- Server & paths ---
	ServerAddr  string
	DataPath    string
	DbPath      string
	FrontendURL string

	// --- Security ---
	JwtSecret string

	// --- Competition ---
	// CompetitionYear anchors the age-category computation performed once
	// at registration. Defaults to the current year.
	CompetitionYear int

	// ParsedFrontendURL is the parsed FrontendURL, used for SSE origin
	// headers.
	ParsedFrontendURL *url.URL
}

// New creates a Config from environment variables. Critical values are
// validated so the server fails fast on a broken deployment instead of
// misbehaving at request time.
func New() (*Config, error) {
	cfg := &Config{
		ServerAddr:  os.Getenv("SERVER_ADDR"),
		DataPath:    os.Getenv("DATA_PATH"),
		JwtSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	// --- Defaults for non-critical values ---
	if cfg.DataPath == "" {
		cfg.DataPath = "./data"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}

	if year := os.Getenv("COMPETITION_YEAR"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return nil, errors.New("FATAL: COMPETITION_YEAR must be an integer")
		}
		cfg.CompetitionYear = y
	} else {
		cfg.CompetitionYear = time.Now().Year()
	}

	// --- Required values ---
	if cfg.JwtSecret == "" {
		return nil, errors.New("FATAL: JWT_SECRET environment variable is not set")
	}
	if cfg.FrontendURL == "" {
		return nil, errors.New("FATAL: FRONTEND_URL environment variable is not set")
	}

	parsedURL, err := url.Parse(cfg.FrontendURL)
	if err != nil {
		return nil, errors.New("FATAL: Invalid FRONTEND_URL format")
	}
	cfg.ParsedFrontendURL = parsedURL

	cfg.DbPath = filepath.Join(cfg.DataPath, "databases")

	return cfg, nil
}
