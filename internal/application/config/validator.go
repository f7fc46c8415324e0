package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/modelscout/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateBackend(cfg.Backend); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateWorkflow(cfg.Workflow); err != nil {
		return err
	}
	if cfg.Dashboard.PollIntervalSeconds < 0 {
		return errors.New("dashboard.poll_interval_seconds must be >= 0")
	}
	if err := validateLogging(cfg.Logging); err != nil {
		return err
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return errors.New("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func validateBackend(b domain.BackendSettings) error {
	if b.BaseURL == "" {
		return errors.New("backend.base_url must be set")
	}
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must be http or https, got %q", b.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.base_url has no host: %q", b.BaseURL)
	}
	if b.TimeoutSeconds < 0 {
		return errors.New("backend.timeout_seconds must be >= 0")
	}
	return nil
}

func validateStorage(s domain.StorageSettings) error {
	switch s.Driver {
	case domain.StorageDriverSQLite, domain.StorageDriverFile:
	default:
		return fmt.Errorf("storage.driver must be sqlite|file, got %s", s.Driver)
	}
	if s.Path == "" {
		return errors.New("storage.path must be set")
	}
	return nil
}

func validateWorkflow(w domain.WorkflowSettings) error {
	if _, err := domain.ParseMode(string(w.DefaultMode)); err != nil {
		return fmt.Errorf("workflow.default_mode: %w", err)
	}
	if w.ProgressStepMS < 0 || w.ProgressClearMS < 0 {
		return errors.New("workflow progress timings must be >= 0")
	}
	return nil
}

func validateLogging(l domain.LoggingSettings) error {
	switch strings.ToLower(l.Level) {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", l.Level)
	}
}
