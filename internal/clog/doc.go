// Package clog is a minimal wrapper around the standard library's
// log.Logger for code generation trace output (per-declaration register
// high-water mark and synthesized lambda count). Silent unless config.Options.Trace is set — neither the
// teacher nor the rest of the retrieval pack pulls in a structured logging
// library for this concern, so this module doesn't either.
package clog
