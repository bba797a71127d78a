package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/realty/internal/flagx"
)

var knownFlags = []string{
	"-a", "-r", "-d", "-k", "-s", "-t",
	"-admin-id", "-admin-secret", "-admin-hash",
	"-refresh", "-seed",
	"-s3-user", "-s3-password", "-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-public-url",
	"-phone", "-agent", "-cors", "-log",
}

// parseFlags overlays command-line flags. Only the flags listed in
// knownFlags are looked at, so -c/-env and unrelated arguments pass
// through untouched. -t is given in minutes, -cors as a comma separated
// list.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "r", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "collection API key")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session signing key")
	ttl := fs.Int("t", 0, "session validity (in minutes)")

	fs.StringVar(&config.AdminID, "admin-id", config.AdminID, "admin identifier")
	fs.StringVar(&config.AdminSecret, "admin-secret", config.AdminSecret, "admin secret")
	fs.StringVar(&config.AdminSecretHash, "admin-hash", config.AdminSecretHash, "bcrypt hash of the admin secret")
	fs.StringVar(&config.RefreshSchedule, "refresh", config.RefreshSchedule, "cron spec of catalog refreshes")
	fs.BoolVar(&config.SeedDemo, "seed", config.SeedDemo, "seed demo listings into an empty catalog")

	fs.StringVar(&config.S3RootUser, "s3-user", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "s3-password", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "s3-bucket", config.S3Bucket, "S3 bucket for listing photos")
	fs.StringVar(&config.S3Region, "s3-region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "s3-endpoint", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "s3-public-url", config.S3PublicBaseURL, "public URL prefix of uploaded photos")

	fs.StringVar(&config.ContactPhone, "phone", config.ContactPhone, "WhatsApp number of the agent")
	fs.StringVar(&config.AgentName, "agent", config.AgentName, "agent name used in messages")
	cors := fs.String("cors", "", "allowed CORS origins, comma separated")
	fs.StringVar(&config.LogMode, "log", config.LogMode, "log mode: development or production")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	if *ttl > 0 {
		config.SessionTTL = time.Duration(*ttl) * time.Minute
	}
	if *cors != "" {
		config.AllowedOrigins = splitList(*cors)
	}
	return nil
}
