package cli

import (
	"testing"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execReset(dir string, confirm ConfirmFunc) (string, error) {
	return execRun(resetCmd, func(cmd *cobra.Command) error {
		return runReset(cmd, dir, clock.Fake(day(14, 0)), confirm)
	})
}

func TestResetClearsRecordAndSchedule(t *testing.T) {
	dir := armedDir(t)

	out, err := execReset(dir, AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, out, "today's clocks cleared")
	assert.Contains(t, out, "auto clock-out canceled")
	assert.Equal(t, 0, loadRecord(t, dir).Filled())
	assert.Empty(t, loadDeadline(t, dir))
}

func TestResetDeclined(t *testing.T) {
	dir := armedDir(t)
	decline := func(string) (bool, error) { return false, nil }

	out, err := execReset(dir, decline)

	require.NoError(t, err)
	assert.Contains(t, out, "nothing cleared")
	assert.Equal(t, 3, loadRecord(t, dir).Filled())
}
