package config

import "time"

// Config holds runtime settings for the profile CLI.
//
// Fields:
//   - ServerURL: base URL of the HTTP API, without a trailing path.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig applies defaults, the optional JSON file and the global flags
// from args. It returns the arguments left after the global flags, starting
// with the subcommand name.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}
