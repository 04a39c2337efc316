package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeafCommandBuild(t *testing.T) {
	cmd := LeafCommand{
		Use:     "test",
		Short:   "A test command",
		Long:    "A longer description",
		Aliases: []string{"t"},
		Args:    cobra.ExactArgs(1),
		BoolFlags: []BoolFlag{
			{Name: "yes", Usage: "skip confirmation prompt", Default: false},
			{Name: "headless", Usage: "do not start the interactive view", Default: true},
		},
		StrFlags: []StringFlag{
			{Name: "output", Shorthand: "o", Usage: "output file", Default: "out.pdf"},
		},
		RunE: func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	assert.Equal(t, "test", cmd.Use)
	assert.Equal(t, "A test command", cmd.Short)
	assert.Equal(t, "A longer description", cmd.Long)
	assert.Equal(t, []string{"t"}, cmd.Aliases)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	yes := cmd.Flags().Lookup("yes")
	require.NotNil(t, yes)
	assert.Equal(t, "false", yes.DefValue)

	headless := cmd.Flags().Lookup("headless")
	require.NotNil(t, headless)
	assert.Equal(t, "true", headless.DefValue)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "out.pdf", output.DefValue)
	assert.Equal(t, "o", output.Shorthand)
}

func TestLeafCommandBuildNoFlags(t *testing.T) {
	cmd := LeafCommand{
		Use:   "simple",
		Short: "A simple command",
		RunE:  func(cmd *cobra.Command, args []string) error { return nil },
	}.Build()

	assert.Equal(t, "simple", cmd.Use)
	assert.False(t, cmd.HasFlags())
}

func TestGroupCommandBuild(t *testing.T) {
	get := &cobra.Command{Use: "get"}
	set := &cobra.Command{Use: "set"}

	cmd := GroupCommand{
		Use:         "group",
		Short:       "A group command",
		Subcommands: []*cobra.Command{get, set},
	}.Build()

	assert.Equal(t, "group", cmd.Use)
	assert.Equal(t, "A group command", cmd.Short)
	assert.Nil(t, cmd.RunE)

	names := make([]string, len(cmd.Commands()))
	for i, c := range cmd.Commands() {
		names[i] = c.Name()
	}
	assert.Contains(t, names, "get")
	assert.Contains(t, names, "set")
}

func TestGroupCommandBuildNoSubcommands(t *testing.T) {
	cmd := GroupCommand{
		Use:   "empty",
		Short: "An empty group",
	}.Build()

	assert.Equal(t, "empty", cmd.Use)
	assert.Empty(t, cmd.Commands())
}
