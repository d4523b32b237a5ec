package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// loadDotenv reads a local .env file when one is present. Variables already
// set in the process environment win.
func loadDotenv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func Load() (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClient loads the configuration used by API consumers (API_URL, API_TIMEOUT).
func LoadClient() (*ClientConfig, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}
	cfg, err := env.ParseAsWithOptions[ClientConfig](env.Options{Prefix: "API_"})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
