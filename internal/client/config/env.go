package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/skillclip/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment keys understood by parseEnv.
const (
	EnvGatewayURL     = "SKILLCLIP_GATEWAY_URL"
	EnvDatabasePath   = "SKILLCLIP_DB_PATH"
	EnvResendCooldown = "SKILLCLIP_RESEND_COOLDOWN"
	EnvRequestTimeout = "SKILLCLIP_REQUEST_TIMEOUT"
	EnvLogLevel       = "SKILLCLIP_LOG_LEVEL"
)

// defaultEnvFile is read when present and no -e/-env flag is given.
const defaultEnvFile = ".env"

// parseEnv overlays Config with SKILLCLIP_* variables. Values come from the
// process environment first and from a dotenv file second, so exported
// variables win over the file. The file is taken from -e/-env, falling back
// to ./.env when it exists.
//
// Panics when an explicitly requested dotenv file cannot be read or when a
// duration value does not parse.
func parseEnv(cfg *Config, args []string, lookup func(string) (string, bool)) {
	file := flagx.EnvFile(args)
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	fileValues, err := godotenv.Read(file)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		fileValues = map[string]string{}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok && v != ""
	}

	if v, ok := get(EnvGatewayURL); ok {
		cfg.GatewayURL = v
	}
	if v, ok := get(EnvDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := get(EnvResendCooldown); ok {
		cfg.ResendCooldown = mustDuration(v)
	}
	if v, ok := get(EnvRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(v)
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
}

func mustDuration(v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
