// Package logger provides structured logging for the sink.
//
// The package wraps Uber's zap with a small method set shared by every
// component: Debug, Info, Warn, Error and Fatal, each taking a message, an
// optional error and any number of field maps. Packages that log declare their
// own Logger interface with that method set, and *Logger satisfies all of them.
//
// Core Features:
//   - JSON output to stderr with ISO8601 timestamps
//   - Service name and process ID on every entry
//   - Caller information
//   - Deterministic field order
//   - Fx module that flushes buffered entries on shutdown
//
// # Direct Usage
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Debug,
//		ServiceName: "qdrant-sink",
//	})
//
//	log.Info("batch committed", nil, map[string]interface{}{
//		"records": 500,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		fx.Supply(logger.Config{Level: logger.Info}),
//		logger.FXModule,
//		fx.Provide(func(l *logger.Logger) sink.Logger { return l }),
//	)
//
// # Logging Levels
//
// Level accepts debug, info, warning (or warn) and error. Unknown values fall
// back to info.
//
// # Thread Safety
//
// All methods are safe for concurrent use by multiple goroutines.
package logger
