package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.APIURL != "" {
		u, err := url.Parse(cfg.APIURL)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("api_url: %v", err))
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, fmt.Sprintf("api_url: scheme must be http or https, got %q", u.Scheme))
		case u.Host == "":
			errs = append(errs, fmt.Sprintf("api_url: missing host in %q", cfg.APIURL))
		}
	}

	if strings.ContainsAny(cfg.BadgeHost, "/: ") {
		errs = append(errs, fmt.Sprintf("badge_host: must be a bare host name, got %q", cfg.BadgeHost))
	}
	if cfg.BadgePort < 0 || cfg.BadgePort > 65535 {
		errs = append(errs, fmt.Sprintf("badge_port: must be between 0 and 65535, got %d", cfg.BadgePort))
	}
	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("timeout: must be non-negative, got %s", cfg.Timeout))
	}
	if cfg.CacheSize < 0 {
		errs = append(errs, fmt.Sprintf("cache_size: must be non-negative, got %d", cfg.CacheSize))
	}
	if cfg.CacheTTL < 0 {
		errs = append(errs, fmt.Sprintf("cache_ttl: must be non-negative, got %s", cfg.CacheTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// BadgeURL returns the badge image address for repository.
func (c *Config) BadgeURL(repository string) string {
	host := c.BadgeHost
	if c.BadgePort != 0 {
		host = fmt.Sprintf("%s:%d", host, c.BadgePort)
	}
	return fmt.Sprintf("http://%s/badge/%s", host, repository)
}
