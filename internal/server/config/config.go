// Package config handles configuration for the listing server: defaults,
// an optional JSON file, environment variables (optionally from a .env
// file) and command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the listing server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the public APIs.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - APIKey: public key expected in the apikey header of the collection API. Required.
//   - SecretKey: HMAC secret for session tokens. A random one is generated when empty.
//   - SessionTTL: lifetime of an admin session token.
//   - AdminID / AdminSecret / AdminSecretHash: admin credentials; a non-empty
//     bcrypt hash takes precedence over the plain secret.
//   - RefreshSchedule: cron spec for periodic catalog reloads, "" disables them.
//   - SeedDemo: insert the demo listings into an empty table at startup.
//   - S3*: object storage for listing photos.
//   - ContactPhone / AgentName: WhatsApp contact target.
//   - AllowedOrigins: CORS origins of the public site API.
//   - LogMode: "development" (colored text) or "production" (JSON).
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string
	DatabaseDSN      string
	APIKey           string
	SecretKey        string
	SessionTTL       time.Duration
	AdminID          string
	AdminSecret      string
	AdminSecretHash  string
	RefreshSchedule  string
	SeedDemo         bool
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3PublicBaseURL  string
	ContactPhone     string
	AgentName        string
	AllowedOrigins   []string
	LogMode          string
}

// LoadDefaults populates Config with development defaults. The DSN and API
// key have no default and must be supplied.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.SessionTTL = 12 * time.Hour
	c.AdminID = "admin"
	c.AdminSecret = "batman25"
	c.RefreshSchedule = "@every 5m"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "listings"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3PublicBaseURL = "http://127.0.0.1:9000/listings/"
	c.ContactPhone = "5535988326287"
	c.AgentName = "Raphael"
	c.AllowedOrigins = []string{"*"}
	c.LogMode = "production"
}

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DatabaseDSN) == "" {
		errs = append(errs, errors.New("database DSN is not set (DATABASE_DSN or -d)"))
	}
	if strings.TrimSpace(c.APIKey) == "" {
		errs = append(errs, errors.New("API key is not set (CATALOG_API_KEY or -k)"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("session TTL must be positive, got %s", c.SessionTTL))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the environment (after loading the dotenv file named by
// -env, or ./.env when present), then flags.
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
