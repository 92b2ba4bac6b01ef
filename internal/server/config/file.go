package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/notely/internal/flagx"
	"github.com/dmitrijs2005/notely/internal/timex"
)

// FileConfig is the on-disk shape of the configuration. Durations accept
// strings like "15s" or integer nanoseconds.
type FileConfig struct {
	Env              string         `json:"env" yaml:"env"`
	EndpointAddrHTTP string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	HTTPTimeout      timex.Duration `json:"http_timeout" yaml:"http_timeout"`
	HTTPIdleTimeout  timex.Duration `json:"http_idle_timeout" yaml:"http_idle_timeout"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	PublicBaseURL    string         `json:"public_base_url" yaml:"public_base_url"`
}

// parseFile overlays values from the config file onto config. Keys missing
// from the file leave the current value untouched. An unreadable or malformed
// file panics, same as a bad flag.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("parse json config %s: %w", path, err)
		}
	}

	return fc, nil
}

func (fc *FileConfig) apply(c *Config) {
	setString(&c.Env, fc.Env)
	setString(&c.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&c.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&c.DatabaseDSN, fc.DatabaseDSN)
	setString(&c.S3RootUser, fc.S3RootUser)
	setString(&c.S3RootPassword, fc.S3RootPassword)
	setString(&c.S3Bucket, fc.S3Bucket)
	setString(&c.S3Region, fc.S3Region)
	setString(&c.S3BaseEndpoint, fc.S3BaseEndpoint)
	setString(&c.PublicBaseURL, fc.PublicBaseURL)

	if fc.HTTPTimeout.Duration > 0 {
		c.HTTPTimeout = fc.HTTPTimeout.Duration
	}
	if fc.HTTPIdleTimeout.Duration > 0 {
		c.HTTPIdleTimeout = fc.HTTPIdleTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
