package cli

import (
	"errors"
	"fmt"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/spf13/cobra"
)

var clockCmd = LeafCommand{
	Use:     "clock",
	Short:   "Clock in or out for the current shift",
	Aliases: []string{"in", "out"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		return runClock(cmd, dir, clock.Real())
	},
}.Build()

func runClock(cmd *cobra.Command, dir string, clk clock.Clock) error {
	s, err := openSession(cmd, dir, clk, clock.Unavailable{})
	if err != nil {
		return err
	}

	if s.ctrl.View().IsEndOfDay {
		return fmt.Errorf("all four clocks are recorded for today")
	}

	res, err := s.ctrl.Handle(cmdContext(cmd), controller.Event{Kind: controller.UserClock})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if res.Recorded {
		_, _ = fmt.Fprintf(w, "%s at %s\n", Primary(res.Option.Label()), Text(schedule.Format12h(res.RecordedAt)))
	}
	if res.Canceled {
		_, _ = fmt.Fprintln(w, Silent("auto clock-out canceled"))
	}
	if res.Armed {
		_, _ = fmt.Fprintf(w, "%s\n", Info("auto clock-out scheduled for "+schedule.Format12h(res.Deadline)))
		if errors.Is(res.Warning, schedule.ErrSchedulingUnavailable) {
			_, _ = fmt.Fprintln(w, Warning("keep 'clocker watch' running to clock out on time; "+
				"otherwise it is applied the next time clocker runs"))
		}
	}

	v := s.ctrl.View()
	if v.IsEndOfDay {
		_, _ = fmt.Fprintf(w, "%s  %s\n", Silent("Day complete:"), Text(formatWorked(v.Record.Worked())+" worked"))
	}
	return nil
}
