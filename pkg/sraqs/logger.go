package sraqs

// Logger provides a pluggable logging interface for submission batches.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs progress of normal operations (files written, archives built).
	Info(format string, args ...interface{})

	// Error logs per-record failures and other errors.
	Error(format string, args ...interface{})
}
