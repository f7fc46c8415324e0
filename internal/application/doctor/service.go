package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/ports"
)

// SessionReader exposes the current session without redirecting.
type SessionReader interface {
	Current() (domain.Session, bool, error)
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Health         ports.HealthChecker
	Sessions       SessionReader
	// StoragePath is reported as-is; empty means storage was not opened.
	StoragePath string
	Timeout     time.Duration
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded v%s, default mode %s", cfg.ConfigFormatVersion, cfg.Workflow.DefaultMode)))

	checks = append(checks, s.storageCheck(cfg))
	checks = append(checks, s.backendCheck(ctx, cfg))
	checks = append(checks, s.sessionCheck())

	if cfg.Telemetry.Enabled {
		checks = append(checks, ok("Telemetry", fmt.Sprintf("exporting to %s", cfg.Telemetry.Endpoint)))
	} else {
		checks = append(checks, warn("Telemetry", "disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) storageCheck(cfg domain.Config) domain.HealthCheck {
	if s.StoragePath == "" {
		return fail("Session storage", "not initialized")
	}
	if cfg.Storage.Driver == domain.StorageDriverSQLite && s.StoragePath != cfg.Storage.Path {
		return warn("Session storage", fmt.Sprintf("sqlite unavailable, using %s", s.StoragePath))
	}
	return ok("Session storage", fmt.Sprintf("%s at %s", cfg.Storage.Driver, s.StoragePath))
}

func (s *Service) backendCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if s.Health == nil {
		return warn("Backend", "health checker not initialized")
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.Health.Health(ctx); err != nil {
		return fail("Backend", fmt.Sprintf("%s unreachable: %v", cfg.Backend.BaseURL, err))
	}
	return ok("Backend", fmt.Sprintf("%s healthy", cfg.Backend.BaseURL))
}

func (s *Service) sessionCheck() domain.HealthCheck {
	if s.Sessions == nil {
		return warn("Session", "store not initialized")
	}
	session, present, err := s.Sessions.Current()
	switch {
	case err != nil:
		return fail("Session", err.Error())
	case !present:
		return warn("Session", "not logged in")
	default:
		return ok("Session", fmt.Sprintf("logged in as %s", session.DisplayName))
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
