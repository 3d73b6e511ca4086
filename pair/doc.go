// Package pair composes two-particle bases and wires the
// inter-particle multipole interaction into the assembly pipeline.
//
// What
//
//   - Compose: the filtered tensor product of two single-particle
//     basis.Index instances. Every (state₀, state₁) combination is
//     formed in deterministic order (particle 0 outer, particle 1
//     inner), re-tagged with its particle slot, and kept only when it
//     satisfies the projection-conservation rule.
//   - ConservationRule: a predicate over the two component keys; the
//     stock TotalProjectionIn(min, max) keeps combinations whose
//     m₀+m₁ lies in the window.
//   - MultipoleProvider: the external collaborator supplying the
//     multipole-expansion coefficients of the interaction, one
//     (q₀, q₁) order pair at a time.
//   - InteractionProvider: adapts a MultipoleProvider to the
//     selection.CouplingProvider contract, so a composed basis flows
//     through restrict, symmetry and hamiltonian exactly like a
//     single-particle one. Sum over order pairs and Hermitian
//     mirroring are handled by the assembler and matrix type.
//   - SumEnergies: adapts a single-particle EnergyProvider to pair
//     states by summing the two component energies (the unperturbed
//     pair diagonal).
//
// Errors
//
//   - ErrNotSingle   — a composed input holds non-Single states.
//   - ErrNilRule     — Compose without a conservation rule.
//   - ErrNotPair     — interaction provider invoked on non-Pair states.
//   - ErrNilProvider — adapter over a nil collaborator.
//
// Complexity: Compose is O(N₀·N₁) rule checks; the combinatorial
// growth this implies is exactly what restrict's reachability filter
// is there to bound afterwards.
package pair
