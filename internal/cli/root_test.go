package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	names := make([]string, len(commands))
	for i, cmd := range commands {
		names[i] = cmd.Name()
	}

	for _, want := range []string{"clock", "status", "cancel", "reset", "watch", "export", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootUseName(t *testing.T) {
	assert.Equal(t, "clocker", rootCmd.Use)
}

func TestRootVerboseFlag(t *testing.T) {
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}
