package cli

import (
	"fmt"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/spf13/cobra"
)

var cancelCmd = LeafCommand{
	Use:   "cancel",
	Short: "Cancel the scheduled auto clock-out",
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
		return runCancel(cmd, dir, clock.Real(), confirmFor(yes))
	},
}.Build()

func runCancel(cmd *cobra.Command, dir string, clk clock.Clock, confirm ConfirmFunc) error {
	s, err := openSession(cmd, dir, clk, clock.Unavailable{})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	v := s.ctrl.View()
	if !v.IsPending {
		_, _ = fmt.Fprintln(w, Text("no auto clock-out is scheduled"))
		return nil
	}

	ok, err := confirm(fmt.Sprintf("Cancel the auto clock-out scheduled for %s?", schedule.Format12h(v.PendingTime)))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, Text("auto clock-out kept"))
		return nil
	}

	if _, err := s.ctrl.Handle(cmdContext(cmd), controller.Event{Kind: controller.UserCancelSchedule}); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, Text("auto clock-out canceled"))
	return nil
}
