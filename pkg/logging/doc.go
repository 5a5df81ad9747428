// Package logging configures the structured loggers used by brumigrate.
//
// It wraps log/slog. Parsers, the validator and the exporter take a
// *slog.Logger through an option and default to Nop, so library callers get
// silence unless they ask otherwise. The CLI builds one logger from the
// resolved configuration and hands it down, tagged per component:
//
//	log, closeLog, err := logging.Open(logging.Config{
//	    Level:  logging.ParseLevel(cfg.LogLevel),
//	    Format: logging.ParseFormat(cfg.LogFormat),
//	    File:   cfg.LogFile,
//	})
//	defer closeLog()
//	p := bruno.NewParser(root, bruno.WithLogger(logging.Component(log, "bruno")))
//
// When File is set, records are written both to Output and, as JSON, to the
// file.
package logging
