package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	appconfig "github.com/doeshing/modelscout/internal/application/config"
	"github.com/doeshing/modelscout/internal/domain"
	"github.com/doeshing/modelscout/internal/pkg/filesystem"
	"github.com/doeshing/modelscout/internal/ports"
)

// FileLoader loads YAML configuration from ~/.modelscout/config.yaml (overridable via MODELSCOUT_CONFIG).
type FileLoader struct {
	overridePath string
	dotenvFiles  []string
}

// NewFileLoader builds a new loader. A .env file in the working directory is honored.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path, dotenvFiles: []string{".env"}}
}

// WithDotenv replaces the .env files consulted before reading the environment.
func (l *FileLoader) WithDotenv(files ...string) *FileLoader {
	l.dotenvFiles = files
	return l
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	l.loadDotenv()

	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return applyEnv(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	cfg = applyEnv(hydrateDefaults(cfg))
	if err := appconfig.Validate(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Path reports the config file location in effect.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(domain.ConfigPathEnvVar); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filesystem.AppPath("config.yaml")
}

// Reset rewrites the config file with defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}
	cfg := DefaultConfig()
	if err := writeConfig(path, cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *FileLoader) loadDotenv() {
	for _, file := range l.dotenvFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		// existing environment variables win over .env entries
		_ = godotenv.Load(file)
	}
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// DefaultConfig is written on first run.
func DefaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Backend: domain.BackendSettings{
			BaseURL:        domain.DefaultBaseURL,
			TimeoutSeconds: int(domain.DefaultHTTPClientTimeout.Seconds()),
		},
		Storage: domain.StorageSettings{
			Driver: domain.StorageDriverSQLite,
			Path:   filesystem.AppPath("session.db"),
		},
		Workflow: domain.WorkflowSettings{
			DefaultMode:     domain.ModeAuto,
			ProgressStepMS:  int(domain.DefaultProgressStep.Milliseconds()),
			ProgressClearMS: int(domain.DefaultProgressClear.Milliseconds()),
		},
		Dashboard: domain.DashboardSettings{
			PollIntervalSeconds: int(domain.DefaultPollInterval.Seconds()),
		},
		Logging: domain.LoggingSettings{Level: "warn"},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := DefaultConfig()
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = def.ConfigFormatVersion
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = def.Backend.BaseURL
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = def.Backend.TimeoutSeconds
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = def.Storage.Driver
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = def.Storage.Path
	}
	cfg.Storage.Path = filesystem.ExpandPath(cfg.Storage.Path)
	if cfg.Workflow.DefaultMode == "" {
		cfg.Workflow.DefaultMode = def.Workflow.DefaultMode
	}
	if cfg.Workflow.ProgressStepMS == 0 {
		cfg.Workflow.ProgressStepMS = def.Workflow.ProgressStepMS
	}
	if cfg.Workflow.ProgressClearMS == 0 {
		cfg.Workflow.ProgressClearMS = def.Workflow.ProgressClearMS
	}
	if cfg.Dashboard.PollIntervalSeconds == 0 {
		cfg.Dashboard.PollIntervalSeconds = def.Dashboard.PollIntervalSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	return cfg
}

func applyEnv(cfg domain.Config) domain.Config {
	if base := strings.TrimSpace(os.Getenv(domain.BaseURLEnvVar)); base != "" {
		cfg.Backend.BaseURL = base
	}
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
