// Package config resolves store paths and the tag column bound from a
// .env file and the process environment. Precedence, lowest to
// highest: compiled defaults, .env, real environment variables. CLI
// flags sit above all of these and are handled by the commands
// themselves.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"qbank/internal/question"
)

// Default store paths, used when nothing else is configured.
const (
	DefaultSheetPath = "questions_database.xlsx"
	DefaultDBPath    = "questions_database.db"
)

// Environment keys read by Load.
const (
	EnvSheet   = "QBANK_SHEET"
	EnvDB      = "QBANK_DB"
	EnvMaxTags = "QBANK_MAX_TAGS"
)

// Config holds the resolved settings.
type Config struct {
	SheetPath string
	DBPath    string
	MaxTags   int
}

// Load resolves the configuration. A missing .env file is normal and
// only debug-logged; an unparseable QBANK_MAX_TAGS falls back to the
// default with a warning rather than failing startup.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment only", "error", err)
	}

	cfg := Config{
		SheetPath: envOr(EnvSheet, DefaultSheetPath),
		DBPath:    envOr(EnvDB, DefaultDBPath),
		MaxTags:   question.DefaultMaxTags,
	}

	if raw := os.Getenv(EnvMaxTags); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			slog.Warn("invalid tag bound, using default",
				"key", EnvMaxTags,
				"value", raw,
				"default", question.DefaultMaxTags,
			)
		} else {
			cfg.MaxTags = n
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
