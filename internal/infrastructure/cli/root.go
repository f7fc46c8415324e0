package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/commands"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	// Stderr receives logs and login hints; defaults to os.Stderr.
	Stderr io.Writer
}

// NewRootCmd wires the cobra root command. The returned container must be
// closed by the caller once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
		Navigator:  helpers.LoginNavigator{Out: stderr},
		LogWriter:  stderr,
	})
	if err != nil {
		return nil, nil, err
	}

	askCmd := commands.NewAskCommand(container)

	root := &cobra.Command{
		Use:   "modelscout [prompt]",
		Short: "ModelScout - compare LLMs on your prompts",
		Long:  "ModelScout sends prompts to several models, scores the answers and recommends cheaper models that keep quality.",
		Args:  cobra.ArbitraryArgs,
		// a bare prompt behaves like `ask` in the configured default mode
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			if err := rejectMistypedCommand(cmd, args); err != nil {
				return err
			}
			return askCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetErr(stderr)

	root.AddCommand(
		commands.NewLoginCommand(container),
		commands.NewLogoutCommand(container),
		commands.NewWhoamiCommand(container),
		askCmd,
		commands.NewHistoryCommand(container),
		commands.NewOptimizeCommand(container),
		commands.NewDashboardCommand(container),
		commands.NewShellCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, container, nil
}

// rejectMistypedCommand stops a lone word close to a subcommand name from being sent as a prompt.
func rejectMistypedCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return nil
	}
	suggestions := cmd.SuggestionsFor(args[0])
	if len(suggestions) == 0 {
		return nil
	}
	return fmt.Errorf("unknown command %q, did you mean %q? Use `%s ask %s` to send it as a prompt",
		args[0], suggestions[0], cmd.Root().Name(), args[0])
}
