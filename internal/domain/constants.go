package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Backend defaults
const (
	// DefaultBaseURL is used when neither config nor environment name a backend
	DefaultBaseURL = "http://localhost:5000"
	// BaseURLEnvVar overrides the configured backend base URL
	BaseURLEnvVar = "MODELSCOUT_API_URL"
	// ConfigPathEnvVar overrides the config file location
	ConfigPathEnvVar = "MODELSCOUT_CONFIG"
	// DebugEnvVar enables debug logging when set to 1 or true
	DebugEnvVar = "MODELSCOUT_DEBUG"
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Storage drivers
const (
	StorageDriverSQLite = "sqlite"
	StorageDriverFile   = "file"
)

// Workflow timing
const (
	// DefaultProgressStep separates two progress hints
	DefaultProgressStep = 2 * time.Second
	// DefaultProgressClear is how long the terminal hint stays up
	DefaultProgressClear = time.Second
	// DefaultPollInterval is the dashboard refresh period
	DefaultPollInterval = 10 * time.Second
)

// User-facing messages
const (
	MsgEmptyPrompt        = "Please enter a prompt"
	MsgEmptyUsername      = "Please enter a username"
	MsgLoginFailed        = "Login failed"
	MsgAnalysisFailed     = "Failed to analyze prompt. Make sure the backend is running."
	MsgOptimizationFailed = "Failed to run optimization. Make sure the backend is running."
	MsgAlreadyOptimal     = "Your current model appears to be optimal for your use case and constraints."
)

// Progress hints
const (
	ProgressCached   = "⚡ Cached response retrieved!"
	ProgressComplete = "✅ Complete!"
)

var (
	autoProgress = []string{
		"🚀 Auto Mode - Finding best model...",
		"⚡ Selecting optimal response...",
	}
	fullProgress = []string{
		"🔍 Detecting use case...",
		"🔄 Testing across models...",
		"📊 Running quality evaluation...",
		"💰 Calculating cost-quality trade-offs...",
	}
)

// ProgressMessages returns a copy of the hint sequence for a mode.
func ProgressMessages(mode Mode) []string {
	src := fullProgress
	if mode == ModeAuto {
		src = autoProgress
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
