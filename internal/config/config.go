// Package config loads the .exago.yaml configuration file.
package config

import (
	"time"
)

// FileName is the configuration file looked up in the working
// directory when no explicit path is given.
const FileName = ".exago.yaml"

// Config holds the viewer settings. Zero values mean "use the default".
type Config struct {
	// APIURL is the root of the exago API.
	APIURL string `yaml:"api_url,omitempty"`

	// BadgeHost and BadgePort locate the badge service shown in the
	// report header.
	BadgeHost string `yaml:"badge_host,omitempty"`
	BadgePort int    `yaml:"badge_port,omitempty"`

	// Timeout bounds one API request.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// CacheSize and CacheTTL size the in-memory results cache.
	CacheSize int           `yaml:"cache_size,omitempty"`
	CacheTTL  time.Duration `yaml:"cache_ttl,omitempty"`

	// ResultsDir, when set, reads documents from disk instead of the API.
	ResultsDir string `yaml:"results_dir,omitempty"`
}

// Defaults.
const (
	DefaultAPIURL    = "http://localhost:8080"
	DefaultBadgeHost = "localhost"
	DefaultBadgePort = 8080
	DefaultTimeout   = 60 * time.Second
	DefaultCacheSize = 128
	DefaultCacheTTL  = 10 * time.Minute
)

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		APIURL:    DefaultAPIURL,
		BadgeHost: DefaultBadgeHost,
		BadgePort: DefaultBadgePort,
		Timeout:   DefaultTimeout,
		CacheSize: DefaultCacheSize,
		CacheTTL:  DefaultCacheTTL,
	}
}

// WithDefaults fills the zero fields of c from Default. c is not
// modified.
func (c *Config) WithDefaults() *Config {
	d := Default()
	if c == nil {
		return d
	}
	out := *c
	if out.APIURL == "" {
		out.APIURL = d.APIURL
	}
	if out.BadgeHost == "" {
		out.BadgeHost = d.BadgeHost
	}
	if out.BadgePort == 0 {
		out.BadgePort = d.BadgePort
	}
	if out.Timeout == 0 {
		out.Timeout = d.Timeout
	}
	if out.CacheSize == 0 {
		out.CacheSize = d.CacheSize
	}
	if out.CacheTTL == 0 {
		out.CacheTTL = d.CacheTTL
	}
	return &out
}
