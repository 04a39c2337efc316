package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/config"
	"github.com/Flyrell/clocker/internal/kv"
	"github.com/Flyrell/clocker/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func day(h, m int) time.Time {
	return time.Date(2025, 6, 11, h, m, 0, 0, time.Local)
}

// execRun points cmd's output at buffers and calls run.
func execRun(cmd *cobra.Command, run func(cmd *cobra.Command) error) (string, error) {
	stdout := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(new(bytes.Buffer))
	err := run(cmd)
	return stdout.String(), err
}

func execClock(t *testing.T, dir string, at time.Time) string {
	t.Helper()
	out, err := execRun(clockCmd, func(cmd *cobra.Command) error {
		return runClock(cmd, dir, clock.Fake(at))
	})
	require.NoError(t, err)
	return out
}

func loadRecord(t *testing.T, dir string) clockstate.Record {
	t.Helper()
	r, err := store.New(kv.NewFileStore(config.StatePath(dir))).Load()
	require.NoError(t, err)
	return r
}

func loadDeadline(t *testing.T, dir string) string {
	t.Helper()
	d, err := store.New(kv.NewFileStore(config.StatePath(dir))).LoadDeadline()
	require.NoError(t, err)
	return d
}
