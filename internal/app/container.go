package app

import (
	"context"
	"errors"
	"io"

	"github.com/doeshing/modelscout/internal/application/dashboard"
	"github.com/doeshing/modelscout/internal/application/doctor"
	"github.com/doeshing/modelscout/internal/application/history"
	"github.com/doeshing/modelscout/internal/application/optimize"
	"github.com/doeshing/modelscout/internal/application/session"
	"github.com/doeshing/modelscout/internal/application/workflow"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/infrastructure/backend"
	"github.com/doeshing/modelscout/internal/infrastructure/config"
	"github.com/doeshing/modelscout/internal/infrastructure/scheduler"
	"github.com/doeshing/modelscout/internal/infrastructure/storage"
	"github.com/doeshing/modelscout/internal/infrastructure/telemetry"
	"github.com/doeshing/modelscout/internal/pkg/logger"
	"github.com/doeshing/modelscout/internal/ports"
	"github.com/doeshing/modelscout/internal/version"
)

// Options tunes container construction.
type Options struct {
	Verbose    bool
	ConfigPath string
	Navigator  ports.Navigator
	LogWriter  io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       ports.Logger
	Store        storage.Store
	Backend      *backend.Client
	Metrics      ports.MetricsRecorder

	Sessions  *session.Store
	History   *history.Cache
	Workflow  *workflow.Controller
	Optimizer *optimize.Runner
	Dashboard *dashboard.Poller
	Doctor    *doctor.Service
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{
		Verbose: opts.Verbose,
		Level:   cfg.Logging.Level,
		Journal: cfg.Logging.Journal,
		Writer:  opts.LogWriter,
	})

	metrics, err := telemetry.New(ctx, cfg.Telemetry, version.Version)
	if err != nil {
		log.Warn("telemetry disabled", map[string]interface{}{"error": err.Error()})
		metrics = telemetry.NoOp{}
	}

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, err
	}

	client := backend.NewClient(cfg.Backend,
		backend.WithMetrics(metrics),
		backend.WithLogger(log),
	)

	sessions := &session.Store{
		KV:        store,
		Auth:      client,
		Navigator: opts.Navigator,
		Logger:    log,
	}

	historyCache := history.NewCache(client, log)
	clock := scheduler.Real{}

	controller := workflow.NewController(workflow.Deps{
		Client:        client,
		History:       historyCache,
		Scheduler:     clock,
		Metrics:       metrics,
		Logger:        log,
		ProgressStep:  cfg.Workflow.ProgressStep(),
		ProgressClear: cfg.Workflow.ProgressClear(),
	})

	poller := dashboard.NewPoller(dashboard.Deps{
		Client:    client,
		Scheduler: clock,
		Metrics:   metrics,
		Logger:    log,
		Interval:  cfg.Dashboard.PollInterval(),
	})

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Health:         client,
		Sessions:       sessions,
		StoragePath:    store.Path(),
	}

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Store:        store,
		Backend:      client,
		Metrics:      metrics,
		Sessions:     sessions,
		History:      historyCache,
		Workflow:     controller,
		Optimizer:    optimize.NewRunner(client, metrics, log),
		Dashboard:    poller,
		Doctor:       doctorService,
	}, nil
}

// Close stops background work and releases storage and telemetry.
func (c *Container) Close(ctx context.Context) error {
	c.Workflow.Close()
	c.Dashboard.Stop()
	return errors.Join(c.Store.Close(), c.Metrics.Close(ctx))
}
