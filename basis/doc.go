// Package basis maintains the ordered basis Index that every matrix in
// pairspec is expressed over.
//
// What
//
//   - Index: an ordered, duplicate-free sequence of state.State values
//     plus the inverse state→position map.
//   - Remove produces a new compacted Index whose surviving states keep
//     their relative order, so downstream coordinate reasoning stays
//     valid across pruning.
//   - Every Index carries an identity Token (UUID) regenerated on each
//     membership change; caches key their entries by it and treat a
//     token change as whole-cache invalidation.
//
// Concurrency
//
//	An Index is mutable only through Add and only during construction.
//	Once a basis has been restricted/symmetrized for a sweep it is
//	treated as read-only and may be shared across workers without
//	locking; Remove never mutates its receiver.
//
// Errors
//
//   - ErrAlreadyPresent — duplicate insertion attempt.
//   - ErrNotFound       — lookup of an absent state.
//   - ErrPositionRange  — position outside [0, Size).
//   - ErrNilState       — nil state.State passed in.
//
// Complexity: Add/Lookup are O(1) amortized; Remove is O(n).
package basis
