// Package logging provides structured logging for uvcctl.
//
// This package wraps zap logger with convenience functions for the few
// logging patterns used throughout the program: driver invocations and
// user-initiated setting changes.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (every v4l2-ctl call, key handling)
//   - Info: Normal operations (controls updated, composite operations)
//   - Warn: Non-fatal issues (failed driver calls, refresh failures)
//   - Error: Fatal issues (startup failures)
//
// # Silent By Default
//
// Unless a level is given (flag, config file or UVCCTL_LOG_LEVEL) the logger
// is a no-op. The interactive controller draws on the whole terminal, so it
// should be started with a log file:
//
//	if err := logging.InitializeFile("debug", "/tmp/uvcctl.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Specialized Logging
//
//	logging.LogDriverCall(logger, args, exitCode, duration, stderr)
//	logging.LogSettingChange(logger, "brightness", "140", "applied")
package logging
