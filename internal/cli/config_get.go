package cli

import (
	"fmt"

	"github.com/Flyrell/clocker/internal/config"
	"github.com/spf13/cobra"
)

var configGetCmd = LeafCommand{
	Use:   "get [key]",
	Short: "Show one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		return runConfigGet(cmd, dir, args)
	},
}.Build()

func runConfigGet(cmd *cobra.Command, dir string, args []string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(args) == 1 {
		value, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, value)
		return nil
	}

	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		if value == "" {
			value = Silent("(unset)")
		}
		_, _ = fmt.Fprintf(w, "%-24s %s\n", Primary(key), value)
	}
	return nil
}
