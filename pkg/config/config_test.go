package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.PersonaDirs)
	assert.Empty(t, cfg.SkillDirs)
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	viper.Set("persona_dirs", []string{"./team/personas"})
	viper.Set("skill_dirs", []string{"./team/skills"})
	viper.Set("variables", map[string]string{"REGION": "eu-west-1"})
	viper.Set("log_level", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"./team/personas"}, cfg.PersonaDirs)
	assert.Equal(t, []string{"./team/skills"}, cfg.SkillDirs)
	assert.Equal(t, map[string]string{"REGION": "eu-west-1"}, cfg.Variables)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadProfile(t *testing.T) {
	viper.Reset()
	viper.Set("persona_dirs", []string{"./personas"})
	viper.Set("variables", map[string]string{"REGION": "eu-west-1", "STAGE": "dev"})
	viper.Set("profiles", map[string]interface{}{
		"prod": map[string]interface{}{
			"variables": map[string]string{"STAGE": "prod"},
		},
	})
	viper.Set("profile", "prod")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Variables["STAGE"], "profile overrides the base value")
	assert.Equal(t, "eu-west-1", cfg.Variables["REGION"], "untouched base values survive")
	assert.Equal(t, []string{"./personas"}, cfg.PersonaDirs, "fields the profile omits are preserved")
}

func TestLoadProfileOverridesDirs(t *testing.T) {
	viper.Reset()
	viper.Set("persona_dirs", []string{"./personas"})
	viper.Set("profiles", map[string]interface{}{
		"ci": map[string]interface{}{
			"persona_dirs": []string{"./ci/personas"},
		},
	})
	viper.Set("profile", "ci")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"./ci/personas"}, cfg.PersonaDirs)
}

func TestLoadUnknownProfile(t *testing.T) {
	viper.Reset()
	viper.Set("profile", "nope")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestLoadDefaultProfileIsNoop(t *testing.T) {
	viper.Reset()
	viper.Set("profile", "default")

	_, err := Load()
	require.NoError(t, err)
}
