// ABOUTME: Connection settings for the Charm KV backend
// ABOUTME: Built from the app config; defaults point at the self-hosted server

package charm

import (
	"time"

	"github.com/charmbracelet/charm/kv"

	"github.com/harperreed/socialpulse/config"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName names the Charm KV database.
	AppName = config.AppName
)

type Config struct {
	Host     string `json:"host,omitempty"`
	AutoSync bool   `json:"auto_sync"`

	// StaleThreshold is how old the local copy may get before a read triggers a sync.
	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// FromSettings converts the charm section of the app config.
func FromSettings(s config.CharmConfig) *Config {
	cfg := DefaultConfig()
	if s.Host != "" {
		cfg.Host = s.Host
	}
	cfg.AutoSync = s.AutoSync
	return cfg
}
