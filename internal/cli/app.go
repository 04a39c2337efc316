package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Flyrell/clocker/internal/clock"
	"github.com/Flyrell/clocker/internal/config"
	"github.com/Flyrell/clocker/internal/controller"
	"github.com/Flyrell/clocker/internal/kv"
	"github.com/Flyrell/clocker/internal/schedule"
	"github.com/Flyrell/clocker/internal/store"
	"github.com/spf13/cobra"
)

// session is a loaded controller plus the settings it was built from.
type session struct {
	dir    string
	cfg    *config.Config
	policy schedule.Policy
	log    *slog.Logger
	ctrl   *controller.Controller
}

// getDataDir returns the clocker data directory for the current user.
func getDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return config.Dir(homeDir), nil
}

// openSession loads config and state from dir and runs the Load event.
// Anything Load did on the user's behalf is reported on cmd's output.
func openSession(cmd *cobra.Command, dir string, clk clock.Clock, facility clock.Facility) (*session, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := cfg.NewLogger(cmd.ErrOrStderr(), verbose)

	ctrl := controller.New(controller.Deps{
		Store:    store.New(kv.NewFileStore(config.StatePath(dir))),
		Facility: facility,
		Clock:    clk,
		Policy:   policy,
		Logger:   logger,
	})

	res, err := ctrl.Handle(cmdContext(cmd), controller.Event{Kind: controller.Load})
	if err != nil {
		return nil, err
	}
	reportLoad(cmd, res)

	return &session{dir: dir, cfg: cfg, policy: policy, log: logger, ctrl: ctrl}, nil
}

func reportLoad(cmd *cobra.Command, res controller.Result) {
	w := cmd.OutOrStdout()
	if res.Recorded {
		_, _ = fmt.Fprintf(w, "%s\n", Info(fmt.Sprintf("auto clocked out at %s (%s)",
			schedule.Format12h(res.RecordedAt), res.Option.Label())))
	}
	if res.RolledOver {
		_, _ = fmt.Fprintln(w, Silent("new day: previous record cleared"))
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
