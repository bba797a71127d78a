package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the listing CLI.
//
// Fields:
//   - ServerURL: base URL of the listing server, e.g. http://127.0.0.1:8080.
//   - APIKey: public key sent in the apikey header.
//   - RequestTimeout: per-request timeout of calls to the server.
//   - ContactPhone / AgentName: WhatsApp contact target for generated links.
//   - LogMode: "development" or "production".
type Config struct {
	ServerURL      string
	APIKey         string
	RequestTimeout time.Duration
	ContactPhone   string
	AgentName      string
	LogMode        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RequestTimeout = 10 * time.Second
	c.ContactPhone = "5535988326287"
	c.AgentName = "Raphael"
	c.LogMode = "production"
}

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.ServerURL) == "" {
		errs = append(errs, errors.New("server URL is not set (CATALOG_URL or -u)"))
	}
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, errors.New("API key is not set (CATALOG_API_KEY or -k)"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	return errors.Join(errs...)
}

// LoadConfig constructs a Config from every source. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := loadDotEnv(args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
