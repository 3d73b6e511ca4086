// Package badgerstore persists sweep results in a Badger key-value
// database, so a long field or distance scan survives process
// restarts.
//
// What:
//
//	▸ Store — a sweep.Store backed by badger/v4. Keys are the cache's
//	  token+fingerprint pairs, values the gob-encoded spectra.
//	▸ Config — path, in-memory mode for tests, sync-write policy and
//	  an optional slog handler that receives Badger's own log lines.
//
// Why: re-running an interrupted sweep should only pay for the points
// it never reached.
//
// Errors: ErrOpen wraps a failed database open; Get and Put surface
// Badger errors unwrapped apart from key-not-found, which is a plain
// miss.
package badgerstore
