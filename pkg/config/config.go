// Package config loads tool settings from viper state (config file, env
// vars, bound flags) into a typed Config, with named profiles layered on
// top of the base configuration.
package config

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the tool-level settings that surround persona resolution:
// where persona and skill definitions live, caller-supplied template
// variables, and logging preferences.
type Config struct {
	PersonaDirs []string           `mapstructure:"persona_dirs"`
	SkillDirs   []string           `mapstructure:"skill_dirs"`
	Variables   map[string]string  `mapstructure:"variables"`
	LogLevel    string             `mapstructure:"log_level"`
	LogFormat   string             `mapstructure:"log_format"`
	Profiles    map[string]Profile `mapstructure:"profiles"`
}

// Profile is a named overlay applied on top of the base config when
// selected via the "profile" setting.
type Profile struct {
	PersonaDirs []string          `mapstructure:"persona_dirs"`
	SkillDirs   []string          `mapstructure:"skill_dirs"`
	Variables   map[string]string `mapstructure:"variables"`
}

// Load builds a Config from the current viper state and applies the active
// profile, if any.
func Load() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to unmarshal configuration")
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	profileName := activeProfile()
	if profileName != "" {
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			return cfg, errors.Errorf("profile '%s' is not defined", profileName)
		}
		if err := applyProfile(&cfg, profile); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

func activeProfile() string {
	profile := viper.GetString("profile")
	if profile == "default" {
		return ""
	}
	return profile
}

// applyProfile decodes the profile on top of the existing config. Zero
// fields are preserved so the profile only overrides what it sets.
func applyProfile(cfg *Config, profile Profile) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ZeroFields:       false,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create profile decoder")
	}

	if err := decoder.Decode(profile); err != nil {
		return errors.Wrap(err, "failed to apply profile")
	}

	return nil
}
