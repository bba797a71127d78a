package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/realty/internal/flagx"
	"github.com/dmitrijs2005/realty/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "15m" or
// nanoseconds. Absent or empty values leave the current setting alone.
type JsonConfig struct {
	EndpointAddrHTTP string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn"`
	APIKey           string         `json:"api_key"`
	SecretKey        string         `json:"secret_key"`
	SessionTTL       timex.Duration `json:"session_ttl"`
	AdminID          string         `json:"admin_id"`
	AdminSecret      string         `json:"admin_secret"`
	AdminSecretHash  string         `json:"admin_secret_hash"`
	RefreshSchedule  *string        `json:"refresh_schedule"`
	SeedDemo         *bool          `json:"seed_demo"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3PublicBaseURL  string         `json:"s3_public_base_url"`
	ContactPhone     string         `json:"contact_phone"`
	AgentName        string         `json:"agent_name"`
	AllowedOrigins   []string       `json:"allowed_origins"`
	LogMode          string         `json:"log_mode"`
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.APIKey, c.APIKey)
	setString(&config.SecretKey, c.SecretKey)
	if c.SessionTTL.Duration > 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	setString(&config.AdminID, c.AdminID)
	setString(&config.AdminSecret, c.AdminSecret)
	setString(&config.AdminSecretHash, c.AdminSecretHash)
	if c.RefreshSchedule != nil {
		config.RefreshSchedule = *c.RefreshSchedule
	}
	if c.SeedDemo != nil {
		config.SeedDemo = *c.SeedDemo
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.ContactPhone, c.ContactPhone)
	setString(&config.AgentName, c.AgentName)
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setString(&config.LogMode, c.LogMode)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
