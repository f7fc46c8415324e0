package domain

import "time"

// Config mirrors ~/.modelscout/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version" json:"config_format_version"`
	Backend             BackendSettings   `yaml:"backend" json:"backend"`
	Storage             StorageSettings   `yaml:"storage" json:"storage"`
	Workflow            WorkflowSettings  `yaml:"workflow" json:"workflow"`
	Dashboard           DashboardSettings `yaml:"dashboard" json:"dashboard"`
	Logging             LoggingSettings   `yaml:"logging" json:"logging"`
	Telemetry           TelemetrySettings `yaml:"telemetry" json:"telemetry"`
}

// BackendSettings locates the analysis backend.
type BackendSettings struct {
	BaseURL        string `yaml:"base_url" json:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
}

// Timeout returns the HTTP timeout as a duration.
func (b BackendSettings) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return DefaultHTTPClientTimeout
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// StorageSettings configures the durable session storage.
type StorageSettings struct {
	Driver string `yaml:"driver" json:"driver"`
	Path   string `yaml:"path" json:"path"`
}

// WorkflowSettings tunes the analysis workflow.
type WorkflowSettings struct {
	DefaultMode     Mode `yaml:"default_mode" json:"default_mode"`
	ProgressStepMS  int  `yaml:"progress_step_ms" json:"progress_step_ms"`
	ProgressClearMS int  `yaml:"progress_clear_ms" json:"progress_clear_ms"`
}

// ProgressStep is the delay between two cosmetic progress messages.
func (w WorkflowSettings) ProgressStep() time.Duration {
	if w.ProgressStepMS <= 0 {
		return DefaultProgressStep
	}
	return time.Duration(w.ProgressStepMS) * time.Millisecond
}

// ProgressClear is how long the terminal progress message stays visible.
func (w WorkflowSettings) ProgressClear() time.Duration {
	if w.ProgressClearMS <= 0 {
		return DefaultProgressClear
	}
	return time.Duration(w.ProgressClearMS) * time.Millisecond
}

// DashboardSettings controls the poller.
type DashboardSettings struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds" json:"poll_interval_seconds"`
}

// PollInterval returns the refresh interval.
func (d DashboardSettings) PollInterval() time.Duration {
	if d.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(d.PollIntervalSeconds) * time.Second
}

// LoggingSettings selects log level and sinks.
type LoggingSettings struct {
	Level   string `yaml:"level" json:"level"`
	Journal bool   `yaml:"journal" json:"journal"`
}

// TelemetrySettings configures the OTLP metrics exporter.
type TelemetrySettings struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	Insecure bool   `yaml:"insecure" json:"insecure"`
}
