package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/modelscout/internal/domain"
)

type stubConfigProvider struct {
	cfg domain.Config
	err error
}

func (s stubConfigProvider) Load(context.Context) (domain.Config, error) {
	return s.cfg, s.err
}

type stubHealth struct{ err error }

func (s stubHealth) Health(context.Context) error { return s.err }

type stubSessions struct {
	session domain.Session
	ok      bool
}

func (s stubSessions) Current() (domain.Session, bool, error) { return s.session, s.ok, nil }

func baseConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Backend:             domain.BackendSettings{BaseURL: "http://localhost:5000"},
		Storage:             domain.StorageSettings{Driver: domain.StorageDriverSQLite, Path: "/tmp/session.db"},
		Workflow:            domain.WorkflowSettings{DefaultMode: domain.ModeAuto},
	}
}

func statusOf(report domain.HealthReport, name string) domain.HealthStatus {
	for _, c := range report.Checks {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func TestRunHealthy(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: baseConfig()},
		Health:         stubHealth{},
		Sessions:       stubSessions{session: domain.Session{DisplayName: "alice"}, ok: true},
		StoragePath:    "/tmp/session.db",
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Config file", "Session storage", "Backend", "Session"} {
		if statusOf(report, name) != domain.HealthOK {
			t.Errorf("%s = %s", name, statusOf(report, name))
		}
	}
	if report.Failed() != 0 {
		t.Fatalf("failed = %d", report.Failed())
	}
}

func TestRunReportsProblems(t *testing.T) {
	svc := &Service{
		ConfigProvider: stubConfigProvider{cfg: baseConfig()},
		Health:         stubHealth{err: errors.New("connection refused")},
		Sessions:       stubSessions{},
		StoragePath:    "/tmp/session.json",
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if statusOf(report, "Backend") != domain.HealthError {
		t.Errorf("backend = %s", statusOf(report, "Backend"))
	}
	if statusOf(report, "Session") != domain.HealthWarn {
		t.Errorf("session = %s", statusOf(report, "Session"))
	}
	if statusOf(report, "Session storage") != domain.HealthWarn {
		t.Errorf("storage = %s", statusOf(report, "Session storage"))
	}
}

func TestRunStopsOnConfigError(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfigProvider{err: errors.New("bad yaml")}}
	report, err := svc.Run(context.Background())
	if err == nil || len(report.Checks) != 1 || report.Checks[0].Status != domain.HealthError {
		t.Fatalf("report=%+v err=%v", report, err)
	}
}
