package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// APIPrefix is appended to APIURL to form the REST base URL.
const APIPrefix = "/api/v1"

// Config holds runtime settings for the YuuSell client.
//
// Fields:
//   - APIURL: backend origin, e.g. http://localhost:8000 (no /api/v1 suffix).
//   - GoogleClientID, FacebookAppID: OAuth application ids; empty disables the provider.
//   - DBPath: SQLite file holding the durable session tokens.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel, LogFormat: slog level name and "text" or "json".
type Config struct {
	APIURL         string
	GoogleClientID string
	FacebookAppID  string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with defaults suitable for a local backend.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:8000"
	c.DBPath = "yuusell.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// BaseURL returns APIURL with the API prefix, without a trailing slash.
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.APIURL, "/") + APIPrefix
}

// LoadConfig builds a Config from defaults, then the .env file and process
// environment, then the JSON file named by --config, then explicitly set
// flags. Later sources win. fs may be nil, in which case only defaults and
// the environment are used.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	envFile := ".env"
	jsonFile := ""
	if fs != nil {
		if f := fs.Lookup(flagEnvFile); f != nil {
			envFile = f.Value.String()
		}
		if f := fs.Lookup(flagConfig); f != nil {
			jsonFile = f.Value.String()
		}
	}

	if err := parseEnv(cfg, envFile); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, jsonFile); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if fs != nil {
		if err := parseFlags(cfg, fs); err != nil {
			return nil, fmt.Errorf("flag config: %w", err)
		}
	}
	return cfg, nil
}
