package commands

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewOptimizeCommand creates the optimize command
func NewOptimizeCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Ask for a cheaper model recommendation based on your history",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := container.Sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			return runOptimization(cmd.Context(), cmd.OutOrStdout(), container, session.UserID)
		},
	}
}

func runOptimization(ctx context.Context, out io.Writer, container *app.Container, userID string) error {
	spinner := helpers.NewSpinner(out)
	spinner.SetLabel(MsgOptimizing)
	spinner.Start()
	rec, err := container.Optimizer.Run(ctx, userID)
	spinner.Stop()

	if err != nil {
		if errors.Is(err, domain.ErrBusy) {
			return err
		}
		if msg := container.Optimizer.Snapshot().Error; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	helpers.RenderOptimization(out, rec)
	return nil
}
