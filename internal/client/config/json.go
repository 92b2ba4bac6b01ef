package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notely/internal/flagx"
	"github.com/dmitrijs2005/notely/internal/timex"
)

// JsonConfig is the on-disk form of Config. Missing fields keep their
// current values.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	TokenFile      string          `json:"token_file"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the file named by flagx.ConfigFileFlag.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
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

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
