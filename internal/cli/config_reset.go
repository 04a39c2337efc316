package cli

import (
	"fmt"

	"github.com/Flyrell/clocker/internal/config"
	"github.com/spf13/cobra"
)

var configResetCmd = LeafCommand{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Usage: "skip confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		return runConfigReset(cmd, dir, confirmFor(yes))
	},
}.Build()

func runConfigReset(cmd *cobra.Command, dir string, confirm ConfirmFunc) error {
	confirmed, err := confirm("Restore the default settings?")
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("aborted")
	}

	if err := config.Save(dir, config.Default()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text("settings reset to defaults"))
	return nil
}
