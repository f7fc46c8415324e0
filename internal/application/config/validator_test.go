package config

import (
	"strings"
	"testing"

	"github.com/doeshing/modelscout/internal/domain"
)

func validConfig() domain.Config {
	return domain.Config{
		Backend:   domain.BackendSettings{BaseURL: "http://localhost:5000", TimeoutSeconds: 30},
		Storage:   domain.StorageSettings{Driver: domain.StorageDriverSQLite, Path: "/tmp/session.db"},
		Workflow:  domain.WorkflowSettings{DefaultMode: domain.ModeAuto},
		Dashboard: domain.DashboardSettings{PollIntervalSeconds: 10},
		Logging:   domain.LoggingSettings{Level: "warn"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "missing base url", mutate: func(c *domain.Config) { c.Backend.BaseURL = "" }, wantErr: "base_url must be set"},
		{name: "bad scheme", mutate: func(c *domain.Config) { c.Backend.BaseURL = "ftp://x" }, wantErr: "http or https"},
		{name: "unknown driver", mutate: func(c *domain.Config) { c.Storage.Driver = "redis" }, wantErr: "storage.driver"},
		{name: "unknown mode", mutate: func(c *domain.Config) { c.Workflow.DefaultMode = "turbo" }, wantErr: "default_mode"},
		{name: "bad level", mutate: func(c *domain.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "telemetry without endpoint", mutate: func(c *domain.Config) { c.Telemetry.Enabled = true }, wantErr: "telemetry.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
