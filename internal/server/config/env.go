package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultDotEnv = ".env"

// parseEnv loads a .env file into the process environment (the one named by
// -env, or ./.env when present) and then overlays environment variables onto
// config. Variables already set in the environment win over the file.
func parseEnv(config *Config, args []string) error {
	if err := loadDotEnv(flagx.DotEnvFile(args)); err != nil {
		return err
	}

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}

func loadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultDotEnv
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}
