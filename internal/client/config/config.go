// Package config handles configuration for the CLI client.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the ProgressPilot CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - SessionFile: path of the file where the session token is kept
//     between runs.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerEndpointAddr string
	SessionFile        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults. The session file lives in
// the user's home directory; if that cannot be resolved, the current
// directory is used instead.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second

	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	c.SessionFile = filepath.Join(dir, ".progresspilot", "session.json")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
