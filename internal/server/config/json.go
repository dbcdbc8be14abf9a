package config

import (
	"encoding/json"
	"os"

	"github.com/ipeonte/usernotes/internal/flagx"
	"github.com/ipeonte/usernotes/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "30s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr         string         `json:"endpoint_addr"`
	DatabaseDSN          string         `json:"database_dsn"`
	SecretKey            string         `json:"secret_key"`
	SessionTokenValidity timex.Duration `json:"session_token_validity"`
	APIRateLimit         int            `json:"api_rate_limit"`
	APIRateWindow        timex.Duration `json:"api_rate_window"`
	LoginRateLimit       int            `json:"login_rate_limit"`
	LoginRateWindow      timex.Duration `json:"login_rate_window"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot
// be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionTokenValidity = c.SessionTokenValidity.Std()
	config.APIRateLimit = c.APIRateLimit
	config.APIRateWindow = c.APIRateWindow.Std()
	config.LoginRateLimit = c.LoginRateLimit
	config.LoginRateWindow = c.LoginRateWindow.Std()
}
