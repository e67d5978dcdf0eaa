// Package config loads runtime configuration for the YuuSell client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The .env file (--env-file, default ".env") and the process
//     environment; process variables win over the file.
//  3. Optional JSON file selected with -c or --config.
//  4. Command-line flags the user explicitly set.
//
// # Environment
//
//	NEXT_PUBLIC_API_URL           backend origin (default http://localhost:8000)
//	NEXT_PUBLIC_GOOGLE_CLIENT_ID  Google OAuth client id
//	NEXT_PUBLIC_FACEBOOK_APP_ID   Facebook app id
//	YUUSELL_DB                    local session database path
//	YUUSELL_REQUEST_TIMEOUT       request timeout, e.g. "15s"
//	LOG_LEVEL, LOG_FORMAT         slog level and handler format
//
// # JSON schema
//
// Durations use timex.Duration, so "30s" and integer nanoseconds both work:
//
//	{
//	  "api_url": "https://api.yuusell.com",
//	  "request_timeout": "30s",
//	  "log_level": "debug"
//	}
//
// The REST base URL used by the HTTP client is APIURL + "/api/v1"
// (see (*Config).BaseURL).
package config
