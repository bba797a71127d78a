package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/realty/internal/flagx"
	"github.com/joho/godotenv"
)

func loadDotEnv(args []string) error {
	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for key, dst := range map[string]*string{
		"CATALOG_URL":     &cfg.ServerURL,
		"CATALOG_API_KEY": &cfg.APIKey,
		"CONTACT_PHONE":   &cfg.ContactPhone,
		"AGENT_NAME":      &cfg.AgentName,
		"LOG_MODE":        &cfg.LogMode,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
