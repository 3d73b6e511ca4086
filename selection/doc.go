// Package selection prunes Hamiltonian couplings before any matrix
// element is computed.
//
// What
//
//   - Operator: a coupling operator tag with its multipole order(s) —
//     Order acts on particle 0 (or the sole particle), Order1 on
//     particle 1 (0 for single-particle operators).
//   - Evaluator: the structural predicate deciding whether a coupling
//     between two basis states can be nonzero under the conservation
//     rules (Δl, Δj, Δm bounds and multipole parity). It is evaluated
//     before the matrix-element provider is ever invoked.
//   - Candidates: a coarse index over a basis.Index bucketing states by
//     (species signature, total projection), so assembly restricts the
//     candidate-partner set long before the fine rule check. Without
//     it, assembly would scan all O(N²) pairs while most are forbidden.
//   - Provider contracts: EnergyProvider and CouplingProvider, the
//     external matrix-element collaborators. Their failures wrap
//     ErrProvider and are propagated verbatim, never retried.
//
// Rules
//
//	For a single-particle operator of order q between keys a, b:
//	  - same species, same particle slot, a ≠ b
//	  - |Δl| ≤ q and l + l' + q even (electric multipole parity)
//	  - |Δj| ≤ q and |Δm| ≤ q
//	For an interaction operator (q0, q1 ≥ 1) between pair states: both
//	slots transition under their own order's rules (an unchanged slot
//	would carry a parity-vanishing element and is rejected), and the
//	total projection is conserved: Δm0 + Δm1 = 0. A single-particle
//	operator applied to pair states changes exactly its own slot and
//	freezes the other.
//
//	When several operators apply to one pair, all allowed contributions
//	are summed by the assembler.
//
// Complexity: Allowed is O(1); Candidates.For returns only states in
// projection-compatible buckets, typically a small fraction of N.
//
// Errors
//
//   - ErrNoOperators — Evaluator constructed with no operators.
//   - ErrBadOperator — negative multipole order.
//   - ErrProvider    — matrix-element collaborator failure (wrapped).
package selection
