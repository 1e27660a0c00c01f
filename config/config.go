// ABOUTME: Application configuration loaded from defaults, config.yaml, .env and PULSE_* env vars
// ABOUTME: Built once by the CLI and handed to constructors; nothing reads it globally
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/harperreed/socialpulse/models"
)

const (
	AppName   = "socialpulse"
	EnvPrefix = "PULSE"
)

type Config struct {
	DBPath    string `mapstructure:"db_path"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// User is the signed-in user id. Empty means anonymous.
	User string `mapstructure:"user"`

	Web           WebConfig           `mapstructure:"web"`
	Copilot       CopilotConfig       `mapstructure:"copilot"`
	Accessibility AccessibilityConfig `mapstructure:"accessibility"`
	Charm         CharmConfig         `mapstructure:"charm"`
}

type WebConfig struct {
	Port int `mapstructure:"port"`
}

type CopilotConfig struct {
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
}

// AccessibilityConfig holds the user's display and input preferences.
type AccessibilityConfig struct {
	HighContrast  bool `mapstructure:"high_contrast"`
	VoiceCommands bool `mapstructure:"voice_commands"`
}

type CharmConfig struct {
	Host     string `mapstructure:"host"`
	AutoSync bool   `mapstructure:"auto_sync"`
}

// Identity returns the auth gate for the configured user.
func (c *Config) Identity() models.Identity {
	return models.Identity{UserID: c.User}
}

// DefaultDBPath is the database location under the XDG data dir.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// ConfigDir is where config.yaml is looked up first.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", DefaultDBPath())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("user", "")
	v.SetDefault("web.port", 8080)
	v.SetDefault("copilot.reply_delay", 500*time.Millisecond)
	v.SetDefault("accessibility.high_contrast", false)
	v.SetDefault("accessibility.voice_commands", false)
	v.SetDefault("charm.host", "charm.2389.dev")
	v.SetDefault("charm.auto_sync", false)
}

// New returns a viper instance with defaults, search paths and env binding
// set up. Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads .env (if present) and config.yaml (if present) into v and
// returns the merged Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads path into the process env without overriding values
// already set. A missing file is fine.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // no .env is the common case
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path is required")
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	if c.Copilot.ReplyDelay < 0 {
		return fmt.Errorf("copilot.reply_delay must not be negative: %s", c.Copilot.ReplyDelay)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
