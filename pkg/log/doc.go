// Package log captures a machine-readable trace of the connection lifecycle.
//
// It is separate from operational logging (slog). A trace records every raw
// stack event the controller saw, every phase change, every retry decision
// and every lifecycle event handed to subscribers, stamped with the session
// it belongs to.
//
// # Basic Usage
//
//	// Console, through slog
//	cfg.TraceLogger = log.NewSlogAdapter(slog.Default())
//
//	// Binary file
//	cfg.TraceLogger, _ = log.NewFileLogger("/var/log/staconn/sta0.stlog")
//
//	// Both
//	cfg.TraceLogger = log.NewMultiLogger(console, file)
//
// # File Format
//
// Trace files are a stream of CBOR encoded events with the .stlog extension.
// The staconn-log tool views, filters, exports and summarises them.
package log
