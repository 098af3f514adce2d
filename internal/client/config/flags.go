package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/skillclip/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the auth gateway
//	-d string   path of the local session database
//	-r int      OTP resend cooldown (in seconds)
//	-t int      gateway request timeout (in seconds)
//	-l string   log level
//
// Only these flags are considered (see flagx.FilterArgs), so -c and -e
// handled elsewhere do not trip the parser. Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-r", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.GatewayURL, "a", cfg.GatewayURL, "base URL of the auth gateway")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")
	resend := fs.Int("r", int(cfg.ResendCooldown.Seconds()), "OTP resend cooldown (in seconds)")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "gateway request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ResendCooldown = time.Duration(*resend) * time.Second
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
