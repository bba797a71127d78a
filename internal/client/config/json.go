package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/realty/internal/flagx"
	"github.com/dmitrijs2005/realty/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// may be given as "10s" or as integer nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	APIKey         string         `json:"api_key"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ContactPhone   string         `json:"contact_phone"`
	AgentName      string         `json:"agent_name"`
	LogMode        string         `json:"log_mode"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.ServerURL, jc.ServerURL)
	overlay(&cfg.APIKey, jc.APIKey)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	overlay(&cfg.ContactPhone, jc.ContactPhone)
	overlay(&cfg.AgentName, jc.AgentName)
	overlay(&cfg.LogMode, jc.LogMode)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
