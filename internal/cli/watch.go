package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/Flyrell/clocker/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var watchCmd = LeafCommand{
	Use:   "watch",
	Short: "Stay running and clock out automatically when the deadline arrives",
	Long: "Runs in the foreground, keeping the auto clock-out timer alive.\n" +
		"On a terminal it shows a live view (c: clock, x: cancel auto clock-out, q: quit);\n" +
		"otherwise, or with --headless, it only logs.",
	Args: cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "headless", Usage: "do not start the interactive view"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := getDataDir()
		if err != nil {
			return err
		}
		headless, _ := cmd.Flags().GetBool("headless")
		if !isTerminal(os.Stdout) {
			headless = true
		}

		ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		clk := clock.Real()
		return runWatch(cmd, dir, clk, clock.NewFacility(clk), headless)
	},
}.Build()

func runWatch(cmd *cobra.Command, dir string, clk clock.Clock, facility *clock.InProcess, headless bool) error {
	s, err := openSession(cmd, dir, clk, facility)
	if err != nil {
		return err
	}

	if headless {
		v := s.ctrl.View()
		if v.IsPending {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
				Info("waiting to clock out at "+schedule.Format12h(v.PendingTime)))
		} else {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Text("no auto clock-out scheduled; waiting"))
		}
		ticker := time.NewTicker(syncInterval)
		defer ticker.Stop()
		err := s.ctrl.Listen(cmdContext(cmd), facility.Fired(), ticker.C)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	m := newWatchModel(cmdContext(cmd), s, clk, facility.Fired())
	p := tea.NewProgram(m, tea.WithContext(cmdContext(cmd)), tea.WithOutput(cmd.OutOrStdout()))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// syncInterval is how often watch re-reads state that other clocker
// commands may have written.
const syncInterval = 2 * time.Second

type firedMsg string

type tickMsg time.Time

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C00"))
	watchBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2)
	watchHelpStyle  = lipgloss.NewStyle().Faint(true)
)

type watchModel struct {
	ctx     context.Context
	session *session
	clock   clock.Clock
	fired   <-chan string

	view    controller.View
	now     time.Time
	message string
}

func newWatchModel(ctx context.Context, s *session, clk clock.Clock, fired <-chan string) watchModel {
	return watchModel{
		ctx:     ctx,
		session: s,
		clock:   clk,
		fired:   fired,
		view:    s.ctrl.View(),
		now:     clk.Now(),
	}
}

func waitForFire(ch <-chan string) tea.Cmd {
	return func() tea.Msg { return firedMsg(<-ch) }
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(waitForFire(m.fired), tick())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case firedMsg:
		res, err := m.session.ctrl.Handle(m.ctx, controller.Event{Kind: controller.TimerFired, CallbackID: string(msg)})
		switch {
		case err != nil:
			m.message = Error("auto clock-out failed: " + err.Error())
		case res.Recorded:
			m.message = "auto clocked out at " + schedule.Format12h(res.RecordedAt)
		}
		m.refresh()
		return m, waitForFire(m.fired)

	case tickMsg:
		m.now = time.Time(msg)
		res, err := m.session.ctrl.Handle(m.ctx, controller.Event{Kind: controller.Load})
		switch {
		case err != nil:
			m.message = Error(err.Error())
		case res.Recorded:
			m.message = "auto clocked out at " + schedule.Format12h(res.RecordedAt)
		case res.RolledOver:
			m.message = "new day: previous record cleared"
		}
		m.refresh()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "c":
			m.clockNow()
		case "x":
			m.cancelSchedule()
		}
		m.refresh()
		return m, nil
	}
	return m, nil
}

func (m *watchModel) refresh() {
	m.view = m.session.ctrl.View()
}

func (m *watchModel) clockNow() {
	if m.session.ctrl.View().IsEndOfDay {
		m.message = "all four clocks are recorded for today"
		return
	}
	res, err := m.session.ctrl.Handle(m.ctx, controller.Event{Kind: controller.UserClock})
	if err != nil {
		m.message = Error(err.Error())
		return
	}
	m.message = res.Option.Label() + " at " + schedule.Format12h(res.RecordedAt)
	if res.Armed {
		m.message += "; auto clock-out at " + schedule.Format12h(res.Deadline)
	}
}

func (m *watchModel) cancelSchedule() {
	res, err := m.session.ctrl.Handle(m.ctx, controller.Event{Kind: controller.UserCancelSchedule})
	switch {
	case err != nil:
		m.message = Error(err.Error())
	case res.Canceled:
		m.message = "auto clock-out canceled"
	default:
		m.message = "no auto clock-out is scheduled"
	}
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(watchTitleStyle.Render("CLOCKER") + "  " + Silent(m.now.Format("Mon Jan 2 15:04:05")) + "\n\n")
	for _, line := range recordLines(m.view.Record, m.now) {
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.view.IsEndOfDay {
		b.WriteString(Text("Day complete, "+formatWorked(m.view.Record.Worked())+" worked") + "\n")
	} else {
		b.WriteString(ClockState(m.view.IsClockedIn) + "  " + Primary(m.view.CurrentOption.Label()) + "  " + Silent("[c] "+actionLabel(m.view)) + "\n")
	}
	if m.view.IsPending {
		b.WriteString(Info("Auto clock-out scheduled for "+schedule.Format12h(m.view.PendingTime)) + "  " + Silent("[x] cancel") + "\n")
	}
	if m.message != "" {
		b.WriteString("\n" + m.message + "\n")
	}

	return watchBoxStyle.Render(b.String()) + "\n" + watchHelpStyle.Render("c clock · x cancel auto clock-out · q quit") + "\n"
}
