package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the SkillClip CLI.
//
// Fields:
//   - GatewayURL: base URL of the remote auth REST API.
//   - DatabasePath: SQLite file holding the persisted session.
//   - ResendCooldown: minimum gap between two OTP resend requests.
//   - RequestTimeout: per-request timeout for gateway calls.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	GatewayURL     string
	DatabasePath   string
	ResendCooldown time.Duration
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayURL = "http://127.0.0.1:8000/api"
	c.DatabasePath = "skillclip.db"
	c.ResendCooldown = 60 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (and an optional dotenv file), a JSON file and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	return loadFromArgs(os.Args[1:], os.LookupEnv)
}

func loadFromArgs(args []string, lookup func(string) (string, bool)) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args, lookup)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
