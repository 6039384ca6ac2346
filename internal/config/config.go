package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// PublishConfig identifies the spreadsheet the rota is published to.
type PublishConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	SheetName     string `yaml:"sheetName,omitempty"`
}

// Config represents the application configuration.
type Config struct {
	// RosterFile is the path to the staff roster YAML file
	RosterFile string `yaml:"rosterFile" validate:"required"`

	// RulesFile is the path to the rule set JSON file
	RulesFile string `yaml:"rulesFile" validate:"required"`

	// DatabaseURL is the PostgreSQL connection string for the schedule
	// history store. Empty means run with the in-memory store (no history
	// survives the process).
	DatabaseURL string `yaml:"databaseURL,omitempty"`

	// Publish configures the spreadsheet publisher; optional
	Publish *PublishConfig `yaml:"publish,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment
// suffix. For example, env="test" will look for "wardroster.test.yaml".
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory and
// the user's home directory.
func findConfigFile(env string) (string, error) {
	configFileName := "wardroster.yaml"
	if env != "" {
		configFileName = "wardroster." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
