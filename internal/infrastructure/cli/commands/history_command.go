package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command
func NewHistoryCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List previous chats",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := container.Sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			view := container.History.Toggle(cmd.Context(), session)
			if !view.Visible {
				helpers.WarningColor.Fprintln(out, MsgHistoryUnavailable)
				return nil
			}
			helpers.RenderHistory(out, view, time.Now())
			return nil
		},
	}
}
