package commands

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewAskCommand creates the ask command
func NewAskCommand(container *app.Container) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Compare models on a prompt",
		Long:  "Submit a prompt. Auto mode returns one chosen answer; full mode compares every model.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolveMode(container, modeFlag)
			if err != nil {
				return err
			}
			session, err := container.Sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			view := newProgressView(container)
			return view.run(cmd.Context(), cmd.OutOrStdout(), strings.Join(args, " "), session.UserID, mode)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Workflow mode: auto|full (default from config)")
	return cmd
}

func resolveMode(container *app.Container, raw string) (domain.Mode, error) {
	if raw == "" {
		return container.Config.Workflow.DefaultMode, nil
	}
	return domain.ParseMode(raw)
}

// progressView mirrors workflow progress onto a spinner for the current submission.
type progressView struct {
	container *app.Container

	mu      sync.Mutex
	spinner *helpers.Spinner
}

func newProgressView(container *app.Container) *progressView {
	v := &progressView{container: container}
	container.Workflow.OnChange(v.update)
	return v
}

func (v *progressView) update(snap domain.WorkflowSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.spinner != nil && snap.Progress != "" {
		v.spinner.SetLabel(snap.Progress)
	}
}

func (v *progressView) attach(out io.Writer) *helpers.Spinner {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.spinner = helpers.NewSpinner(out)
	return v.spinner
}

func (v *progressView) detach() {
	v.mu.Lock()
	spinner := v.spinner
	v.spinner = nil
	v.mu.Unlock()
	if spinner != nil {
		spinner.Stop()
	}
}

// run submits one prompt and renders the outcome.
func (v *progressView) run(ctx context.Context, out io.Writer, prompt, userID string, mode domain.Mode) error {
	result, err := v.submit(ctx, out, prompt, userID, mode)
	if err != nil {
		return err
	}
	helpers.RenderAnalysis(out, result)
	return nil
}

// submit drives the spinner for one submission and maps failures to the view message.
func (v *progressView) submit(ctx context.Context, out io.Writer, prompt, userID string, mode domain.Mode) (domain.AnalysisResult, error) {
	spinner := v.attach(out)
	spinner.Start()
	result, err := v.container.Workflow.Submit(ctx, prompt, userID, mode)
	v.detach()

	if err != nil {
		if errors.Is(err, domain.ErrBusy) || errors.Is(err, domain.ErrStale) {
			return domain.AnalysisResult{}, err
		}
		if msg := v.container.Workflow.Snapshot().Error; msg != "" {
			return domain.AnalysisResult{}, errors.New(msg)
		}
		return domain.AnalysisResult{}, err
	}
	return result, nil
}
