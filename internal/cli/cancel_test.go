package cli

import (
	"errors"
	"testing"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execCancel(dir string, confirm ConfirmFunc) (string, error) {
	return execRun(cancelCmd, func(cmd *cobra.Command) error {
		return runCancel(cmd, dir, clock.Fake(day(14, 0)), confirm)
	})
}

func armedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	execClock(t, dir, day(8, 0))
	execClock(t, dir, day(12, 0))
	execClock(t, dir, day(13, 0))
	require.NotEmpty(t, loadDeadline(t, dir))
	return dir
}

func TestCancelNothingScheduled(t *testing.T) {
	called := false
	confirm := func(string) (bool, error) { called = true; return true, nil }

	out, err := execCancel(t.TempDir(), confirm)

	require.NoError(t, err)
	assert.Contains(t, out, "no auto clock-out is scheduled")
	assert.False(t, called)
}

func TestCancelConfirmed(t *testing.T) {
	dir := armedDir(t)

	out, err := execCancel(dir, AlwaysYes())

	require.NoError(t, err)
	assert.Contains(t, out, "auto clock-out canceled")
	assert.Empty(t, loadDeadline(t, dir))
}

func TestCancelDeclined(t *testing.T) {
	dir := armedDir(t)
	var prompt string
	decline := func(p string) (bool, error) { prompt = p; return false, nil }

	out, err := execCancel(dir, decline)

	require.NoError(t, err)
	assert.Contains(t, prompt, "5:30 PM")
	assert.Contains(t, out, "auto clock-out kept")
	assert.NotEmpty(t, loadDeadline(t, dir))
}

func TestCancelPromptError(t *testing.T) {
	dir := armedDir(t)
	fail := func(string) (bool, error) { return false, errors.New("no tty") }

	_, err := execCancel(dir, fail)

	assert.Error(t, err)
	assert.NotEmpty(t, loadDeadline(t, dir))
}
