// Package sweep evaluates spectra across grids of parameter points and
// caches the results.
//
// What:
//
//	▸ Fingerprint — an order-independent BLAKE3 hash of a parameter map,
//	  the cache key for one point.
//	▸ Cache — memoizes spectra per (basis identity token, fingerprint).
//	  The whole cache invalidates atomically the moment the basis token
//	  changes, so results computed against a stale basis can never leak.
//	▸ Store — optional persistence behind the cache (read-through and
//	  write-through); MemoryStore ships here, a Badger-backed store
//	  lives in package badgerstore.
//	▸ Runner — a bounded worker pool that walks a list of points and
//	  returns one Outcome per point in input order. A failing point
//	  records its error and never aborts its neighbours.
//
// Why:
//
//	Parameter sweeps (field scans, distance scans) re-diagonalize the
//	same basis at many nearby points; revisited points are free, and
//	restriction of the basis must drop every cached spectrum at once.
//
// Complexity: cache hits are O(1); a sweep of p points over w workers
// costs p/w wall-clock diagonalizations.
//
// Errors: ErrNilIndex, ErrNilCompute, ErrBadWorkers, ErrStore.
package sweep
