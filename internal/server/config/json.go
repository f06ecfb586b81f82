package config

import (
	"encoding/json"
	"os"

	"github.com/cuidarmais/registry/internal/flagx"
)

// JsonConfig is the DTO used only for reading JSON configuration files.
// After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP string `json:"endpoint_addr_http"`
	DatabaseDSN      string `json:"database_dsn"`
}

// parseJson loads configuration values from a JSON file whose path is given
// via the -c or -config flags. When no path is given, nothing is loaded.
// An unreadable or invalid file panics: a config file that was explicitly
// requested must not be silently ignored.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
}
