package cli

import (
	"fmt"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/spf13/cobra"
)

var resetCmd = LeafCommand{
	Use:   "reset",
	Short: "Clear today's clocks and any scheduled auto clock-out",
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
		return runReset(cmd, dir, clock.Real(), confirmFor(yes))
	},
}.Build()

func runReset(cmd *cobra.Command, dir string, clk clock.Clock, confirm ConfirmFunc) error {
	s, err := openSession(cmd, dir, clk, clock.Unavailable{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	ok, err := confirm("Clear all of today's clocks?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, Text("nothing cleared"))
		return nil
	}

	res, err := s.ctrl.Handle(cmdContext(cmd), controller.Event{Kind: controller.Reset})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, Text("today's clocks cleared"))
	if res.Canceled {
		_, _ = fmt.Fprintln(w, Silent("auto clock-out canceled"))
	}
	return nil
}
