package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags reads the global flags at the front of args. A config file
// named with -c/-config is applied first so that -a and -t override it.
// Parsing stops at the first non-flag argument, which is returned along
// with everything after it.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configFile string
	fs.StringVar(&configFile, "c", "", "path to JSON config")
	fs.StringVar(&configFile, "config", "", "path to JSON config")
	serverURL := fs.String("a", "", "base URL of the profile service")
	timeout := fs.Int("t", 0, "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configFile != "" {
		if err := parseJson(cfg, configFile); err != nil {
			return nil, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.ServerURL = *serverURL
		case "t":
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})

	return fs.Args(), nil
}
