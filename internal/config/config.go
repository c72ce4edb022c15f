package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process configuration read from YAML and TTT_* environment variables.
type Config struct {
	LogLevel  string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"TTT_LOG_FORMAT" env-default:"json"`
	HTTP      HTTP   `yaml:"http"`
	Events    Events `yaml:"events"`
	Term      Term   `yaml:"term"`
}

// HTTP configures the web host.
type HTTP struct {
	Addr              string        `yaml:"addr" env:"TTT_HTTP_ADDR" env-default:":8080"`
	ReadHeaderTimeout time.Duration `yaml:"read-header-timeout" env:"TTT_HTTP_READ_HEADER_TIMEOUT" env-default:"5s"`
	ShutdownTimeout   time.Duration `yaml:"shutdown-timeout" env:"TTT_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Events configures the server-sent event stream.
type Events struct {
	Heartbeat time.Duration `yaml:"heartbeat" env:"TTT_EVENTS_HEARTBEAT" env-default:"15s"`
}

// Term configures the terminal host. Color defaults to true in Load.
type Term struct {
	Color bool `yaml:"color" env:"TTT_TERM_COLOR"`
}

// Load reads the YAML file at path, then applies environment overrides.
// With an empty path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	// seeded here rather than through env-default, which would override a false from the file
	conf := &Config{Term: Term{Color: true}}

	if path == "" {
		if err := cleanenv.ReadEnv(conf); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
		return conf, nil
	}

	if err := cleanenv.ReadConfig(path, conf); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return conf, nil
}

// MustLoad - same as Load but panics on failure.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}

	return conf
}
