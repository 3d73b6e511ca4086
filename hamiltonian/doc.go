// Package hamiltonian assembles the sparse Hermitian operator matrix
// of a system over a basis.Index.
//
// What
//
//   - Matrix: a sparse Hermitian complex matrix indexed by basis
//     positions. Only the upper triangle is stored; At mirrors the
//     conjugate transparently, so Hermiticity is a structural
//     invariant rather than a property to re-check. Exports to gonum
//     via Dense (complex) and SymDense (real case).
//   - Term: one explicit coupling (row state, column state, operator,
//     parameter-dependent coefficient); the Hermitian-conjugate
//     counterpart is implied.
//   - Assemble: diagonal from an EnergyProvider, off-diagonal from a
//     CouplingProvider over selection-approved pairs only. Candidate
//     partners come from the coarse selection.Candidates index, never
//     from a dense O(N²) scan.
//
// Assembly is a pure function of its inputs: it mutates no shared
// state and is all-or-nothing — on any provider error the matrix under
// construction is discarded and the error is propagated verbatim
// (wrapping selection.ErrProvider).
//
// Errors
//
//   - ErrBadDim        — non-positive dimension.
//   - ErrOutOfRange    — index outside [0, Dim).
//   - ErrNotHermitian  — complex value written to the diagonal.
//   - ErrComplexMatrix — SymDense export of a matrix with complex entries.
//   - ErrNilEvaluator  — coupling assembly without an Evaluator.
//   - ErrBadOption     — negative drop tolerance.
//
// Complexity: assembly is O(N·C·K) for N basis states, C candidate
// partners per state and K operators, plus O(N) diagonal work.
package hamiltonian
