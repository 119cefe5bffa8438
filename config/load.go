package config

import (
	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

// Load reads an optional .env file and binds environment variables onto the
// config struct. A missing .env is not an error; deployed environments set
// variables directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
