// Package config loads runtime configuration for the SkillClip CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: SKILLCLIP_* variables, then a dotenv file given with
//     -e/-env (or ./.env when present). Exported variables win over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the auth gateway
//	-d string   path of the local session database
//	-r int      OTP resend cooldown (seconds)
//	-t int      gateway request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "gateway_url": "https://api.skillclip.app/api",
//	  "database_path": "skillclip.db",
//	  "resend_cooldown": "60s",
//	  "request_timeout": "15s",
//	  "log_level": "info"
//	}
package config
