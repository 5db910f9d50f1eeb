package cli

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"poolgate/internal/address"
	"poolgate/internal/hosts"
)

// ConfigGet retrieves a configuration value by key using dot notation
func ConfigGet(key string) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if key == "" {
		data, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	value, err := getConfigValue(config, key)
	if err != nil {
		return err
	}

	switch v := value.(type) {
	case APIConfig:
		fmt.Printf("bind: %s\n", v.Bind)
		fmt.Printf("port: %d\n", v.Port)
	case LoggingConfig:
		fmt.Printf("level: %s\n", v.Level)
		fmt.Printf("format: %s\n", v.Format)
	default:
		fmt.Printf("%v\n", v)
	}

	return nil
}

// ConfigSet sets a configuration value by key using dot notation
func ConfigSet(key, value string) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := setConfigValue(config, key, value); err != nil {
		return err
	}

	if err := config.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// getConfigValue retrieves a value from the config using dot notation
func getConfigValue(config *CLIConfig, key string) (interface{}, error) {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "network":
		if len(parts) > 1 {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		return config.Network, nil
	case "strictness":
		if len(parts) > 1 {
			return nil, fmt.Errorf("unknown config key: %s", key)
		}
		return config.Strictness, nil
	case "api":
		if len(parts) == 1 {
			return config.API, nil
		}
		return getAPIValue(&config.API, parts[1:])
	case "logging":
		if len(parts) == 1 {
			return config.Logging, nil
		}
		return getLoggingValue(&config.Logging, parts[1:])
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

func getAPIValue(api *APIConfig, parts []string) (interface{}, error) {
	switch parts[0] {
	case "bind":
		return api.Bind, nil
	case "port":
		return api.Port, nil
	default:
		return nil, fmt.Errorf("unknown api key: %s", parts[0])
	}
}

func getLoggingValue(logging *LoggingConfig, parts []string) (interface{}, error) {
	switch parts[0] {
	case "level":
		return logging.Level, nil
	case "format":
		return logging.Format, nil
	default:
		return nil, fmt.Errorf("unknown logging key: %s", parts[0])
	}
}

// setConfigValue sets a value in the config using dot notation
func setConfigValue(config *CLIConfig, key, value string) error {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "network":
		n, err := hosts.ParseNetwork(value)
		if err != nil {
			return fmt.Errorf("invalid network: %s (must be mainnet or devnet)", value)
		}
		config.Network = string(n)
	case "strictness":
		s, err := address.ParseStrictness(value)
		if err != nil {
			return err
		}
		config.Strictness = string(s)
	case "api":
		if len(parts) < 2 {
			return fmt.Errorf("cannot set entire api section, specify a sub-key")
		}
		return setAPIValue(&config.API, parts[1:], value)
	case "logging":
		if len(parts) < 2 {
			return fmt.Errorf("cannot set entire logging section, specify a sub-key")
		}
		return setLoggingValue(&config.Logging, parts[1:], value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return nil
}

func setAPIValue(api *APIConfig, parts []string, value string) error {
	switch parts[0] {
	case "bind":
		api.Bind = value
	case "port":
		p, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port: %s (must be a number)", value)
		}
		if p < 1 || p > 65535 {
			return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", p)
		}
		api.Port = p
	default:
		return fmt.Errorf("unknown api key: %s", parts[0])
	}

	return nil
}

func setLoggingValue(logging *LoggingConfig, parts []string, value string) error {
	switch parts[0] {
	case "level":
		if _, err := parseLevel(value); err != nil {
			return err
		}
		logging.Level = strings.ToLower(value)
	case "format":
		if value != "text" && value != "json" {
			return fmt.Errorf("invalid format: %s (must be text or json)", value)
		}
		logging.Format = value
	default:
		return fmt.Errorf("unknown logging key: %s", parts[0])
	}

	return nil
}
