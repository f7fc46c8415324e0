// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The workflow services in internal/application depend only on these
// interfaces. Concrete adapters (HTTP backend client, SQLite session storage,
// OTLP metrics, slog logger, cobra views) live under internal/infrastructure
// and internal/pkg and are wired together in internal/app.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/modelscout/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.modelscout/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// KeyValueStore is durable client-side storage. Only the session store writes it.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	// SetMany writes every pair or none of them.
	SetMany(values map[string]string) error
	// Delete removes the keys together.
	Delete(keys ...string) error
}

// AuthClient performs the login/logout exchange with the backend.
type AuthClient interface {
	Login(ctx context.Context, username string) (domain.LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// AnalysisClient submits a prompt to the mode-appropriate endpoint.
type AnalysisClient interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
}

// HistoryClient fetches a user's past interactions using the session token.
type HistoryClient interface {
	History(ctx context.Context, session domain.Session) ([]domain.HistoryEntry, error)
}

// OptimizerClient asks the backend for a model-switch recommendation.
type OptimizerClient interface {
	Optimize(ctx context.Context, userID string) (domain.OptimizationRecommendation, error)
}

// DashboardClient fetches aggregate statistics.
type DashboardClient interface {
	DashboardData(ctx context.Context) (domain.DashboardSnapshot, error)
}

// HealthChecker probes backend reachability.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Navigator moves the user to the login entry point.
type Navigator interface {
	RedirectToLogin(reason string)
}

// HistoryInvalidator drops cached history so the next view refetches it.
type HistoryInvalidator interface {
	Invalidate()
}

// Scheduler runs callbacks after a delay. Tests substitute a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// MetricsRecorder counts workflow outcomes.
type MetricsRecorder interface {
	RecordAnalysis(ctx context.Context, mode domain.Mode, outcome string)
	RecordOptimization(ctx context.Context, outcome string)
	RecordDashboardPoll(ctx context.Context, fromBackend bool)
	RecordRequest(ctx context.Context, endpoint string, status int, elapsed time.Duration)
	Close(ctx context.Context) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, systemd journal).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
