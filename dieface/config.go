package dieface

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/restartfu/gophig"
	"github.com/smell-of-curry/dieface/dieface/internal"
	"github.com/smell-of-curry/dieface/dieface/util"
)

// Config holds the configuration of the table directory, the HTTP service and
// the fairness analysis.
type Config struct {
	Dieface struct {
		SentryDsn     string        `env:"DIEFACE_SENTRY_DSN"`
		LogLevel      string        `env:"DIEFACE_LOG_LEVEL"` // Can be "debug", "info", "warn", "error"
		TablePath     string        `env:"DIEFACE_TABLES"`
		Persist       bool          // Write successful edits back to the table files
		Watch         bool          // Reload table files when they change
		WatchDebounce util.Duration // How long a file must be quiet before it is reloaded
	}
	Service struct {
		Address string `env:"DIEFACE_ADDRESS"`
		Key     string `env:"DIEFACE_KEY"`
	}
	Analysis struct {
		Samples int
		Seed    uint64
	}
}

// DefaultConfig returns a config with prefilled default values.
func DefaultConfig() Config {
	c := Config{}

	c.Dieface.SentryDsn = ""
	c.Dieface.LogLevel = "info"
	c.Dieface.TablePath = "resources/tables"
	c.Dieface.Persist = true
	c.Dieface.Watch = true
	c.Dieface.WatchDebounce = util.Duration(internal.DefaultDebounce)

	c.Service.Address = ":8080"
	c.Service.Key = ""

	c.Analysis.Samples = internal.DefaultSamples
	c.Analysis.Seed = 1

	return c
}

// ParseLogLevel returns the appropriate slog.Level based on string configuration.
// Returns an error if the provided log level string is not recognized.
func ParseLogLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unrecognized log level: %q", level)
	}
}

// ReadConfig loads the configuration from the TOML file at path.
// If the file doesn't exist, it creates a new one with default values.
// Environment variables override the values read from the file.
func ReadConfig(path string) (Config, error) {
	g := gophig.NewGophig[Config](path, gophig.TOMLMarshaler{}, os.ModePerm)
	_, err := g.LoadConf()
	if os.IsNotExist(err) {
		err = g.SaveConf(DefaultConfig())
		if err != nil {
			return Config{}, err
		}
	}
	c, err := g.LoadConf()
	if err != nil {
		return Config{}, err
	}
	if err = env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return c, nil
}
