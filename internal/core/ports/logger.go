package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs per-module detail, visible in verbose runs.
	Debug(msg string)
	// Info logs an informational message.
	Info(msg string)
	// Warn logs a recoverable degradation.
	Warn(msg string)
	// Error logs a failure. Context rides on the error's metadata.
	Error(err error)
}
