package cli

import (
	"fmt"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/clockstate"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/spf13/cobra"
)

var statusCmd = LeafCommand{
	Use:   "status",
	Short: "Show today's clocks and the auto clock-out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		return runStatus(cmd, dir, clock.Real())
	},
}.Build()

func runStatus(cmd *cobra.Command, dir string, clk clock.Clock) error {
	s, err := openSession(cmd, dir, clk, clock.Unavailable{})
	if err != nil {
		return err
	}

	v := s.ctrl.View()
	w := cmd.OutOrStdout()

	if v.IsEndOfDay {
		_, _ = fmt.Fprintf(w, "%s     %s\n", Silent("Next:"), Text("day complete"))
	} else {
		_, _ = fmt.Fprintf(w, "%s     %s  %s\n", Silent("Next:"), Primary(v.CurrentOption.Label()),
			Silent("("+actionLabel(v)+")"))
	}
	_, _ = fmt.Fprintf(w, "%s    %s\n", Silent("State:"), ClockState(v.IsClockedIn))

	_, _ = fmt.Fprintln(w)
	for _, line := range recordLines(v.Record, clk.Now()) {
		_, _ = fmt.Fprintln(w, line)
	}
	_, _ = fmt.Fprintf(w, "  %-21s %s\n", Silent("Worked"), Text(formatWorked(v.Record.Worked())))

	_, _ = fmt.Fprintln(w)
	if v.IsPending {
		_, _ = fmt.Fprintf(w, "%s  %s\n", Silent("Auto clock-out:"), Info("scheduled for "+schedule.Format12h(v.PendingTime)))
	} else {
		_, _ = fmt.Fprintf(w, "%s  %s\n", Silent("Auto clock-out:"), Text("not scheduled"))
	}
	_, _ = fmt.Fprintf(w, "%s          %s\n", Silent("Policy:"), Text(describePolicy(s.policy)))
	return nil
}

// actionLabel is the verb offered for the next clock.
func actionLabel(v controller.View) string {
	if v.IsClockedIn {
		return "clock out"
	}
	return "clock in"
}

// recordLines renders each option with its time, or a dash if unrecorded.
func recordLines(r clockstate.Record, day time.Time) []string {
	lines := make([]string, 0, len(clockstate.Options))
	for _, o := range clockstate.Options {
		value := Silent("-")
		if t, ok := r.Time(o, day); ok {
			value = Text(schedule.Format12h(t))
		}
		lines = append(lines, fmt.Sprintf("  %-21s %s", o.Label(), value))
	}
	return lines
}

func describePolicy(p schedule.Policy) string {
	if p.Disabled {
		return "auto clock-out disabled"
	}
	when := schedule.FormatOffset(p.After) + " after " + p.Trigger.Label()
	if p.At != nil {
		when = "at " + schedule.Format12h(p.At.On(time.Now())) + " after " + p.Trigger.Label()
	}
	return when + ", " + schedule.FormatWorkdays(p.Workdays)
}

// formatWorked renders d as "7h 45m".
func formatWorked(d time.Duration) string {
	return schedule.FormatOffset(d)
}
