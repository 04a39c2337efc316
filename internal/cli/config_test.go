package cli

import (
	"testing"

	"github.com/Flyrell/clocker/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigGetAll(t *testing.T) {
	out, err := execRun(configGetCmd, func(cmd *cobra.Command) error {
		return runConfigGet(cmd, t.TempDir(), nil)
	})

	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "4h30m")
}

func TestConfigSetThenGet(t *testing.T) {
	dir := t.TempDir()

	out, err := execRun(configSetCmd, func(cmd *cobra.Command) error {
		return runConfigSet(cmd, dir, "auto_clock_out.after", "5h")
	})
	require.NoError(t, err)
	assert.Contains(t, out, "auto_clock_out.after")

	out, err = execRun(configGetCmd, func(cmd *cobra.Command) error {
		return runConfigGet(cmd, dir, []string{"auto_clock_out.after"})
	})
	require.NoError(t, err)
	assert.Equal(t, "5h\n", out)
}

func TestConfigSetInvalidLeavesFileAlone(t *testing.T) {
	dir := t.TempDir()

	_, err := execRun(configSetCmd, func(cmd *cobra.Command) error {
		return runConfigSet(cmd, dir, "auto_clock_out.trigger", "LUNCH")
	})
	require.Error(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfigGetUnknownKey(t *testing.T) {
	_, err := execRun(configGetCmd, func(cmd *cobra.Command) error {
		return runConfigGet(cmd, t.TempDir(), []string{"nope"})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestConfigSetAffectsArming(t *testing.T) {
	dir := t.TempDir()
	_, err := execRun(configSetCmd, func(cmd *cobra.Command) error {
		return runConfigSet(cmd, dir, "auto_clock_out.at", "4pm")
	})
	require.NoError(t, err)

	execClock(t, dir, day(8, 0))
	execClock(t, dir, day(12, 0))
	out := execClock(t, dir, day(13, 0))

	assert.Contains(t, out, "auto clock-out scheduled for 4:00 PM")
}

func TestConfigReset(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	require.NoError(t, cfg.Set("log_level", "debug"))
	require.NoError(t, config.Save(dir, cfg))

	out, err := execRun(configResetCmd, func(cmd *cobra.Command) error {
		return runConfigReset(cmd, dir, AlwaysYes())
	})
	require.NoError(t, err)
	assert.Contains(t, out, "reset to defaults")

	loaded, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", loaded.LogLevel)
}

func TestConfigResetDeclined(t *testing.T) {
	decline := func(string) (bool, error) { return false, nil }

	_, err := execRun(configResetCmd, func(cmd *cobra.Command) error {
		return runConfigReset(cmd, t.TempDir(), decline)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
}
