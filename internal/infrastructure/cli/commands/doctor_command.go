package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/modelscout/internal/app"
	"github.com/doeshing/modelscout/internal/infrastructure/cli/helpers"
)

// NewDoctorCommand creates the doctor command
func NewDoctorCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose configuration, storage and backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Doctor == nil {
				return errors.New(ErrDoctorServiceUnavailable)
			}
			out := cmd.OutOrStdout()
			report, err := container.Doctor.Run(cmd.Context())

			// Display report even if there were errors
			helpers.RenderDoctorReport(out, report)

			if err != nil {
				return fmt.Errorf("diagnostics completed with errors: %w", err)
			}
			if n := report.Failed(); n > 0 {
				return fmt.Errorf("%d check(s) failed", n)
			}
			return nil
		},
	}
}
