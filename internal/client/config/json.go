package config

import (
	"encoding/json"
	"os"

	"github.com/batyok32/shipyuusell-sub001/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling. Empty fields leave
// the corresponding Config value untouched.
type JsonConfig struct {
	APIURL         string         `json:"api_url"`
	GoogleClientID string         `json:"google_client_id"`
	FacebookAppID  string         `json:"facebook_app_id"`
	DBPath         string         `json:"db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
}

// parseJson overlays cfg with the JSON file at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIURL, jc.APIURL)
	setString(&cfg.GoogleClientID, jc.GoogleClientID)
	setString(&cfg.FacebookAppID, jc.FacebookAppID)
	setString(&cfg.DBPath, jc.DBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
