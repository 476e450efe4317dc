// Package config provides Viper-based configuration loading for the campaign aid.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ContentConfig locates the rules, equipment catalog, and unit sheets on disk.
type ContentConfig struct {
	// RulesFile is a YAML rules set; empty selects the built-in base game rules.
	RulesFile string `mapstructure:"rules_file"`
	// RulesMode names the mode of the built-in rules when RulesFile is empty.
	RulesMode string `mapstructure:"rules_mode"`
	// EquipmentDir holds one YAML file per equipment definition.
	EquipmentDir string `mapstructure:"equipment_dir"`
	// UnitsDir holds one YAML unit sheet per file.
	UnitsDir string `mapstructure:"units_dir"`
}

// LoadoutConfig holds refit budget settings.
type LoadoutConfig struct {
	// Strict rejects any equipment addition that exceeds the available tonnage.
	Strict bool `mapstructure:"strict"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Content ContentConfig `mapstructure:"content"`
	Loadout LoadoutConfig `mapstructure:"loadout"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.RulesFile == "" && c.RulesMode == "" {
		errs = append(errs, "content.rules_mode must not be empty without content.rules_file")
	}
	if c.EquipmentDir == "" {
		errs = append(errs, "content.equipment_dir must not be empty")
	}
	if c.UnitsDir == "" {
		errs = append(errs, "content.units_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CAMPAIGN_ prefix
	v.SetEnvPrefix("CAMPAIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("content.rules_file", "")
	v.SetDefault("content.rules_mode", "campaign")
	v.SetDefault("content.equipment_dir", "content/equipment")
	v.SetDefault("content.units_dir", "content/units")

	v.SetDefault("loadout.strict", true)
}
