package apify

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the extension settings read from the environment.
type Config struct {
	// URLPrefix is the prefix routes are installed under.
	URLPrefix string `env:"APIFY_URL_PREFIX" envDefault:"/api"`
	// DefaultMimetype is the response format used for wildcard Accept
	// headers and 406 bodies.
	DefaultMimetype string `env:"APIFY_DEFAULT_MIMETYPE" envDefault:"application/json"`
}

// dotenvOnce guards the one-time .env autoload shared by all LoadConfig calls.
var dotenvOnce sync.Once

// LoadConfig reads Config from environment variables, loading a .env file
// from the working directory on first use if one exists.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("apify: parse config: %w", err)
	}
	return cfg, nil
}

// MustLoadConfig is LoadConfig panicking on failure, for use at startup.
func MustLoadConfig() Config {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}
