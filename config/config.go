package config

import (
	"time"

	env "github.com/caarlos0/env/v11"
)

const EnvPrefix = "ASYNCDOCKET_"

// Config holds the settings shared by the CLI commands.
// Command line flags override these values.
type Config struct {
	Address        string        `env:"ADDRESS" envDefault:":8080"`
	BaseURL        string        `env:"BASE_URL" envDefault:"/"`
	Debounce       time.Duration `env:"DEBOUNCE" envDefault:"100ms"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"LOG_FORMAT" envDefault:"text"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, err
	}
	return &cfg, nil
}
