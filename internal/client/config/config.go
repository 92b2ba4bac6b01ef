package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerBaseURL  string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults points the client at a local server and keeps the token under
// the user's home directory.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notely_token"
	}
	return filepath.Join(home, ".notely", "token")
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
