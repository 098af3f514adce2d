package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/skillclip/internal/flagx"
	"github.com/dmitrijs2005/skillclip/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so the file may say "60s" or give integer
// nanoseconds. Zero values leave the current Config value untouched.
type JsonConfig struct {
	GatewayURL     string         `json:"gateway_url"`
	DatabasePath   string         `json:"database_path"`
	ResendCooldown timex.Duration `json:"resend_cooldown"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without the flag nothing happens.
//
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigFile(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GatewayURL != "" {
		cfg.GatewayURL = jc.GatewayURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ResendCooldown.Duration > 0 {
		cfg.ResendCooldown = jc.ResendCooldown.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
