// Copyright (c) 2026 ClaimPoint. All rights reserved.

/*
Package config holds runtime settings for the ClaimPoint CLI.

Sources overlay in order: built-in defaults, then an optional JSON file, then
command-line flags. Later sources win.
*/
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the CLI's runtime settings.
type Config struct {
	// BaseURL is the versioned API root, e.g. "http://localhost:8080/api/v1".
	BaseURL string

	// CredentialPath is the sqlite file holding the persisted session.
	CredentialPath string

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080/api/v1"
	c.CredentialPath = defaultCredentialPath()
	c.RequestTimeout = 30 * time.Second
}

// jsonConfig is a DTO used exclusively for JSON unmarshalling.
type jsonConfig struct {
	BaseURL        string `json:"base_url"`
	CredentialPath string `json:"credential_path"`
	RequestTimeout string `json:"request_timeout"`
}

/*
Load constructs a Config from defaults and an optional JSON file.

Parameters:
  - path: string (JSON file path; empty skips the overlay)

Returns:
  - *Config: Merged configuration
  - error: Read, parse, or duration format failures
*/
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("client_config_read_failed: %w", err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return nil, fmt.Errorf("client_config_parse_failed: %w", err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.CredentialPath != "" {
		cfg.CredentialPath = jc.CredentialPath
	}
	if jc.RequestTimeout != "" {
		timeout, err := time.ParseDuration(jc.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("client_config_parse_failed: %w", err)
		}
		cfg.RequestTimeout = timeout
	}

	return cfg, nil
}

// defaultCredentialPath places the session database under the user's config
// directory, falling back to the working directory.
func defaultCredentialPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "claimpoint.db"
	}
	return filepath.Join(base, "claimpoint", "session.db")
}
