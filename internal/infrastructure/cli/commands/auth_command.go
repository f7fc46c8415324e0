package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/application/session"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewLoginCommand creates the login command
func NewLoginCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in and store the session locally",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.Join(args, " ")
			if username == "" {
				var err error
				username, err = helpers.PromptForString(cmd.OutOrStdout(), bufio.NewReader(cmd.InOrStdin()), "Username", "")
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
			}
			return runLogin(cmd, container, username)
		},
	}
}

func runLogin(cmd *cobra.Command, container *app.Container, username string) error {
	out := cmd.OutOrStdout()
	result, err := container.Sessions.Login(cmd.Context(), username)
	if err != nil {
		return errors.New(session.FailureMessage(err))
	}

	helpers.SuccessColor.Fprintf(out, "✓ Logged in as %s", result.Session.DisplayName)
	if result.HistoryCount > 0 {
		fmt.Fprintf(out, " (%d previous chats)", result.HistoryCount)
	}
	fmt.Fprintln(out)
	return nil
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear local state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Sessions.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("clear session: %w", err)
			}
			return nil
		},
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			current, ok, err := container.Sessions.Current()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, MsgNotLoggedIn)
				return nil
			}
			fmt.Fprintf(out, "Username: %s\nUser ID:  %s\nBackend:  %s\n",
				current.DisplayName, current.UserID, container.Backend.BaseURL())
			return nil
		},
	}
}
