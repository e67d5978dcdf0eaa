package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names. The NEXT_PUBLIC_ names are shared with the web
// frontend so one .env file serves both.
const (
	EnvAPIURL         = "NEXT_PUBLIC_API_URL"
	EnvGoogleClientID = "NEXT_PUBLIC_GOOGLE_CLIENT_ID"
	EnvFacebookAppID  = "NEXT_PUBLIC_FACEBOOK_APP_ID"
	EnvDBPath         = "YUUSELL_DB"
	EnvRequestTimeout = "YUUSELL_REQUEST_TIMEOUT"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
)

// parseEnv overlays cfg with values from envFile (if it exists) and the
// process environment. Process variables take precedence over the file.
func parseEnv(cfg *Config, envFile string) error {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvAPIURL); ok {
		cfg.APIURL = v
	}
	if v, ok := lookup(EnvGoogleClientID); ok {
		cfg.GoogleClientID = v
	}
	if v, ok := lookup(EnvFacebookAppID); ok {
		cfg.FacebookAppID = v
	}
	if v, ok := lookup(EnvDBPath); ok {
		cfg.DBPath = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	return nil
}
