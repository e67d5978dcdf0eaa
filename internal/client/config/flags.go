package config

import "github.com/spf13/pflag"

const (
	flagConfig         = "config"
	flagEnvFile        = "env-file"
	flagAPIURL         = "api-url"
	flagGoogleClientID = "google-client-id"
	flagFacebookAppID  = "facebook-app-id"
	flagDBPath         = "db"
	flagTimeout        = "timeout"
	flagLogLevel       = "log-level"
)

// BindFlags registers the configuration flags on fs. Defaults shown in help
// come from LoadDefaults; only flags the user actually sets override other
// sources.
func BindFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.StringP(flagConfig, "c", "", "path to JSON config file")
	fs.String(flagEnvFile, ".env", "path to .env file")
	fs.String(flagAPIURL, d.APIURL, "backend API origin (overrides "+EnvAPIURL+")")
	fs.String(flagGoogleClientID, "", "Google OAuth client id")
	fs.String(flagFacebookAppID, "", "Facebook app id")
	fs.String(flagDBPath, d.DBPath, "path to local session database")
	fs.Duration(flagTimeout, d.RequestTimeout, "HTTP request timeout")
	fs.String(flagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
}

// parseFlags copies every flag the user changed into cfg.
func parseFlags(cfg *Config, fs *pflag.FlagSet) error {
	strs := map[string]*string{
		flagAPIURL:         &cfg.APIURL,
		flagGoogleClientID: &cfg.GoogleClientID,
		flagFacebookAppID:  &cfg.FacebookAppID,
		flagDBPath:         &cfg.DBPath,
		flagLogLevel:       &cfg.LogLevel,
	}
	for name, dst := range strs {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(flagTimeout) {
		v, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return err
		}
		cfg.RequestTimeout = v
	}
	return nil
}
