package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewShellCommand creates the interactive shell command
func NewShellCommand(container *app.Container) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt session",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolveMode(container, modeFlag)
			if err != nil {
				return err
			}
			session, err := container.Sessions.RequireSession(cmd.Context())
			if err != nil {
				return err
			}
			sh := newShell(container, session, mode, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return sh.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Initial workflow mode: auto|full")
	return cmd
}

type shell struct {
	container *app.Container
	session   domain.Session
	mode      domain.Mode
	in        *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	progress  *progressView

	// background optimizations; outMu keeps rendered blocks whole
	wg    sync.WaitGroup
	outMu sync.Mutex
}

// syncWriter serializes single writes from the spinner and background renders.
type syncWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (s syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func newShell(container *app.Container, session domain.Session, mode domain.Mode, in io.Reader, out, errOut io.Writer) *shell {
	writeMu := &sync.Mutex{}
	return &shell{
		container: container,
		session:   session,
		mode:      mode,
		in:        bufio.NewReader(in),
		out:       syncWriter{mu: writeMu, w: out},
		errOut:    syncWriter{mu: writeMu, w: errOut},
		progress:  newProgressView(container),
	}
}

func (s *shell) run(ctx context.Context) error {
	defer s.wg.Wait()

	helpers.TitleColor.Fprintf(s.out, "ModelScout shell, signed in as %s.\n", s.session.DisplayName)
	helpers.MutedColor.Fprintf(s.out, "Type a prompt, or %s for commands.\n", shellCmdHelp)

	for {
		s.printf("%s [%s]> ", s.session.DisplayName, s.mode)
		line, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		quit, cmdErr := s.handle(ctx, strings.TrimSpace(line))
		if cmdErr != nil {
			s.report(cmdErr)
		}
		if quit || errors.Is(err, io.EOF) || ctx.Err() != nil {
			s.printf("\n")
			return nil
		}
	}
}

// handle executes one line. quit is true when the session should end.
func (s *shell) handle(ctx context.Context, line string) (quit bool, err error) {
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		return false, s.ask(ctx, line)
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case shellCmdQuit, shellCmdExit:
		return true, nil
	case shellCmdHelp:
		s.printHelp()
	case shellCmdMode:
		return false, s.switchMode(fields[1:])
	case shellCmdHistory:
		view := s.container.History.Toggle(ctx, s.session)
		s.withOutput(func() {
			helpers.RenderHistory(s.out, view, time.Now())
		})
	case shellCmdOptimize:
		s.optimizeInBackground(ctx)
	case shellCmdLogout:
		return true, s.container.Sessions.Logout(ctx)
	default:
		return false, fmt.Errorf("unknown command %s (try %s)", fields[0], shellCmdHelp)
	}
	return false, nil
}

// ask only holds outMu for the render, so a background :optimize result can print mid-analysis.
func (s *shell) ask(ctx context.Context, prompt string) error {
	result, err := s.progress.submit(ctx, s.out, prompt, s.session.UserID, s.mode)
	if err != nil {
		return err
	}
	s.withOutput(func() {
		helpers.RenderAnalysis(s.out, result)
	})
	return nil
}

func (s *shell) switchMode(args []string) error {
	next := domain.ModeFull
	if s.mode == domain.ModeFull {
		next = domain.ModeAuto
	}
	if len(args) > 0 {
		parsed, err := domain.ParseMode(args[0])
		if err != nil {
			return err
		}
		next = parsed
	}
	s.mode = next
	s.printf("Mode set to %s.\n", s.mode)
	return nil
}

// optimizeInBackground lets prompts continue while the recommendation is computed.
func (s *shell) optimizeInBackground(ctx context.Context) {
	if s.container.Optimizer.Snapshot().State == domain.OptimizerOptimizing {
		s.report(domain.ErrBusy)
		return
	}
	s.printf("%s\n", MsgOptimizing)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		rec, err := s.container.Optimizer.Run(ctx, s.session.UserID)
		if err != nil {
			msg := s.container.Optimizer.Snapshot().Error
			if msg == "" || errors.Is(err, domain.ErrBusy) {
				msg = err.Error()
			}
			s.report(errors.New(msg))
			return
		}
		s.withOutput(func() {
			helpers.RenderOptimization(s.out, rec)
		})
	}()
}

func (s *shell) printHelp() {
	s.withOutput(func() {
		fmt.Fprintf(s.out, "  %-18s switch between auto and full mode\n", shellCmdMode+" [auto|full]")
		fmt.Fprintf(s.out, "  %-18s show or hide previous chats\n", shellCmdHistory)
		fmt.Fprintf(s.out, "  %-18s recommend a cheaper model\n", shellCmdOptimize)
		fmt.Fprintf(s.out, "  %-18s sign out and leave\n", shellCmdLogout)
		fmt.Fprintf(s.out, "  %-18s leave the shell\n", shellCmdQuit)
	})
}

func (s *shell) report(err error) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	helpers.ErrorColor.Fprintf(s.errOut, "Error: %v\n", err)
}

func (s *shell) printf(format string, args ...interface{}) {
	s.withOutput(func() {
		fmt.Fprintf(s.out, format, args...)
	})
}

func (s *shell) withOutput(fn func()) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fn()
}
