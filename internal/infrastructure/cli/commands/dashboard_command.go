package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

const clearScreen = "\033[H\033[2J"

// NewDashboardCommand creates the dashboard command
func NewDashboardCommand(container *app.Container) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregate usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				return showDashboardOnce(cmd.Context(), out, container)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchDashboard(ctx, out, container)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep refreshing until interrupted")
	return cmd
}

func showDashboardOnce(ctx context.Context, out io.Writer, container *app.Container) error {
	container.Dashboard.Start(ctx)
	container.Dashboard.Stop()
	snap, ok := container.Dashboard.Snapshot()
	if !ok {
		snap = domain.MockSnapshot()
	}
	helpers.RenderDashboard(out, snap)
	return nil
}

// watchDashboard redraws on every poll until ctx ends.
func watchDashboard(ctx context.Context, out io.Writer, container *app.Container) error {
	var mu sync.Mutex
	redraw := helpers.IsTerminal(out)
	container.Dashboard.OnChange(func(snap domain.DashboardSnapshot) {
		mu.Lock()
		defer mu.Unlock()
		if redraw {
			fmt.Fprint(out, clearScreen)
		}
		helpers.RenderDashboard(out, snap)
		helpers.MutedColor.Fprintf(out, "\nRefreshing every %s. Press Ctrl+C to exit.\n", container.Config.Dashboard.PollInterval())
	})

	container.Dashboard.Start(ctx)
	<-ctx.Done()
	container.Dashboard.Stop()
	return nil
}
