package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DeleteByValue    = "value"
	DeleteByPosition = "position"

	ProdEnv = "production"
)

type Config struct {
	Addr       string        `env:"ADDR"        envDefault:":8080"`
	Env        string        `env:"ENV"         envDefault:"development"`
	LogLevel   string        `env:"LOG_LEVEL"   envDefault:"info"`
	Locale     string        `env:"LOCALE"      envDefault:"pt_BR"`
	FeedFile   string        `env:"FEED_FILE"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	DeleteMode string        `env:"DELETE_MODE" envDefault:"value"`
}

// Load reads an optional .env file and parses TIMELINE_* variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: "TIMELINE_"})
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DeleteMode != DeleteByValue && c.DeleteMode != DeleteByPosition {
		return fmt.Errorf("TIMELINE_DELETE_MODE must be %q or %q, got %q", DeleteByValue, DeleteByPosition, c.DeleteMode)
	}
	if c.SessionTTL < time.Second {
		return fmt.Errorf("TIMELINE_SESSION_TTL must be at least 1s, got %s", c.SessionTTL)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == ProdEnv
}
