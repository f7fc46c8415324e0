package commands

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrKeyRequired              = "--key is required"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNotLoggedIn        = "Not logged in."
	MsgOptimizing         = "Running optimization..."
	MsgHistoryUnavailable = "Could not load history. Run with --verbose for details."
)

// Shell meta commands
const (
	shellCmdMode     = ":mode"
	shellCmdHistory  = ":history"
	shellCmdOptimize = ":optimize"
	shellCmdLogout   = ":logout"
	shellCmdQuit     = ":quit"
	shellCmdExit     = ":exit"
	shellCmdHelp     = ":help"
)
