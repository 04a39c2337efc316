package cli

import (
	"fmt"

	"github.com/Flyrell/clocker/internal/config"
	"github.com/spf13/cobra"
)

var configSetCmd = LeafCommand{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: "Change a setting. Keys:\n" +
		"  log_level                debug, info, warn or error\n" +
		"  auto_clock_out.enabled   true or false\n" +
		"  auto_clock_out.trigger   option whose clock arms the timer, e.g. AFTERNOON_IN\n" +
		"  auto_clock_out.after     offset from the trigger clock, e.g. 4h30m\n" +
		"  auto_clock_out.at        fixed time of day, e.g. 17:30 (empty to use 'after')\n" +
		"  auto_clock_out.workdays  weekdays, every day, or an RRULE",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, dir, args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, dir, key, value string) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := config.Save(dir, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", Text(fmt.Sprintf("%s set to '%s'", Primary(key), value)))
	return nil
}
