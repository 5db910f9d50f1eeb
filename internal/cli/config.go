package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
)

// CLIConfig is the on-disk configuration. It selects among registered
// networks but can never add a trusted host.
type CLIConfig struct {
	Network    string        `yaml:"network"`
	Strictness string        `yaml:"strictness"`
	API        APIConfig     `yaml:"api"`
	Logging    LoggingConfig `yaml:"logging"`
}

// APIConfig configures the local HTTP API
type APIConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Network:    string(hosts.DefaultNetwork),
		Strictness: string(address.StrictnessStructural),
		API: APIConfig{
			Bind: DefaultAPIBind,
			Port: DefaultAPIPort,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// ConfigDir returns the configuration directory. POOLGATE_HOME overrides the
// default of ~/.poolgate.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".poolgate"
	}
	return filepath.Join(home, ".poolgate")
}

// ConfigPath returns the configuration file path
func ConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LoadConfig reads the configuration file, falling back to defaults when it
// does not exist
func LoadConfig() (*CLIConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration file
func (c *CLIConfig) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks every field
func (c *CLIConfig) Validate() error {
	if _, err := hosts.ParseNetwork(c.Network); err != nil {
		return fmt.Errorf("invalid network: %s (must be mainnet or devnet)", c.Network)
	}
	if _, err := address.ParseStrictness(c.Strictness); err != nil {
		return err
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.API.Port)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be text or json)", c.Logging.Format)
	}
	return nil
}

// NetworkValue returns the configured network
func (c *CLIConfig) NetworkValue() hosts.Network {
	n, err := hosts.ParseNetwork(c.Network)
	if err != nil {
		return hosts.DefaultNetwork
	}
	return n
}

// Validator returns an address validator at the configured strictness
func (c *CLIConfig) Validator() *address.Validator {
	s, err := address.ParseStrictness(c.Strictness)
	if err != nil {
		s = address.StrictnessStructural
	}
	return address.NewValidator(s)
}

// SetupLogging installs the configured slog handler as the default logger
func SetupLogging(cfg LoggingConfig, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid level: %s (must be debug, info, warn, or error)", level)
	}
}
