package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/realty/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   base URL of the listing server
//	-k string   API key
//	-i int      request timeout (in seconds)
//	-phone      WhatsApp number of the agent
//	-agent      agent name used in messages
//	-log        log mode
//
// Only these flags are parsed; the rest of the command line is ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-u", "-k", "-i", "-phone", "-agent", "-log"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "u", cfg.ServerURL, "listing server URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "API key")
	timeout := fs.Int("i", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.ContactPhone, "phone", cfg.ContactPhone, "agent WhatsApp number")
	fs.StringVar(&cfg.AgentName, "agent", cfg.AgentName, "agent name")
	fs.StringVar(&cfg.LogMode, "log", cfg.LogMode, "log mode")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
