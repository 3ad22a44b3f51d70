package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.FlavorGFM, cfg.Parser.Flavor)
	assert.True(t, config.BoolValue(cfg.Parser.Callouts, false))
	assert.True(t, config.BoolValue(cfg.Parser.FrontMatter, false))
	assert.Equal(t, config.ColorAuto, cfg.Render.Color)
	assert.Equal(t, config.FormatText, cfg.Output.Format)
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Vault = "Notes"
	cfg.Render.Width = 72
	cfg.Parser.Callouts = config.Bool(false)

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("vault: Work\nrender:\n  width: 100\n  color: never\n"))
	require.NoError(t, err)
	assert.Equal(t, "Work", cfg.Vault)
	assert.Equal(t, 100, cfg.Render.Width)
	assert.Equal(t, config.ColorNever, cfg.Render.Color)
	assert.Nil(t, cfg.Parser.Callouts)

	empty, err := config.FromYAML([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, empty)

	_, err = config.FromYAML([]byte("vaultt: typo\n"))
	require.Error(t, err)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Vault: "Notes"}
	out, err := cfg.ToYAMLWithHeader("# basalt configuration")
	require.NoError(t, err)
	assert.Equal(t, "# basalt configuration\n\nvault: Notes\n", string(out))
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	clone := original.Clone()
	require.NotSame(t, original, clone)
	assert.Equal(t, original, clone)

	*clone.Parser.Callouts = false
	assert.True(t, *original.Parser.Callouts)
}

func TestBoolValue(t *testing.T) {
	t.Parallel()

	assert.True(t, config.BoolValue(nil, true))
	assert.False(t, config.BoolValue(config.Bool(false), true))
}
