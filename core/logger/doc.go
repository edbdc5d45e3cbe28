// Package logger provides a structured logging facility based on Zap.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json, console, or auto (console when stderr is a terminal)
//
// The command line's verbosity count maps onto levels with LevelForVerbosity.
//
// # Run correlation
//
// Every invocation gets a run id; WithRunID attaches it to all entries so
// lines from concurrent cron runs can be told apart.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Load finished", zap.Int("added", 3))
package logger
