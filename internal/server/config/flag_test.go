package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8081", "-r", "127.0.0.1:9090", "-d", "db", "-k", "key", "-s", "secret", "-t", "30",
				"-admin-id", "agent", "-admin-secret", "pw", "-admin-hash", "hash",
				"-refresh", "@hourly", "-seed",
				"-s3-user", "user", "-s3-password", "password", "-s3-bucket", "bucket",
				"-s3-region", "us-west-1", "-s3-endpoint", "http://endpoint", "-s3-public-url", "http://cdn/",
				"-phone", "5511", "-agent", "Ana", "-cors", "https://a,https://b", "-log", "development",
			},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:8081",
				EndpointAddrGRPC: "127.0.0.1:9090",
				DatabaseDSN:      "db",
				APIKey:           "key",
				SecretKey:        "secret",
				SessionTTL:       30 * time.Minute,
				AdminID:          "agent",
				AdminSecret:      "pw",
				AdminSecretHash:  "hash",
				RefreshSchedule:  "@hourly",
				SeedDemo:         true,
				S3RootUser:       "user",
				S3RootPassword:   "password",
				S3Bucket:         "bucket",
				S3Region:         "us-west-1",
				S3BaseEndpoint:   "http://endpoint",
				S3PublicBaseURL:  "http://cdn/",
				ContactPhone:     "5511",
				AgentName:        "Ana",
				AllowedOrigins:   []string{"https://a", "https://b"},
				LogMode:          "development",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-d", "db"},
			expected: &Config{DatabaseDSN: "db"},
		},
		{
			name:    "bad minutes",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
