// Package symmetry block-diagonalizes a system by partitioning its
// basis into invariant subspaces of a symmetry operator that commutes
// with the Hamiltonian.
//
// What
//
//   - Operator: maps a basis state to its image under the symmetry
//     with a phase, e.g. particle exchange (|ab⟩ → |ba⟩) or spatial
//     parity (|s⟩ → (−1)^Σl |s⟩).
//   - Partition: groups the basis into up to three subspaces —
//     Symmetric (+1), Antisymmetric (−1) and None (states the
//     symmetry cannot pair, e.g. heteronuclear pairs or images
//     truncated out of the basis; these stay unsymmetrized).
//   - Subspace: the invariant block. Each subspace basis vector is a
//     normalized combination of parent positions ((|ab⟩ ± |ba⟩)/√2
//     for exchange pairs); Project produces the block Hamiltonian for
//     independent diagonalization.
//
// Partition invariant (tested): every parent position is owned by
// exactly one subspace vector — the union of owned position sets is
// the full basis, intersections are empty. For an exchanged pair
// (p, q) the +1 subspace owns min(p, q) and the −1 subspace owns
// max(p, q); self-symmetric states fall entirely into +1 (their
// antisymmetric combination vanishes).
//
// Because the operator commutes with the Hamiltonian by construction,
// matrix elements between different subspaces are guaranteed zero;
// Project never computes them.
//
// Errors
//
//   - ErrNilOperator — Partition without an operator.
//   - ErrImageRange  — an operator image with a phase of zero magnitude.
//
// Complexity: Partition is O(N) lookups; Project is O(d²·c²) for block
// dimension d and ≤2 components per vector.
package symmetry
