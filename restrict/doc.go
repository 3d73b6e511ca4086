// Package restrict prunes a basis.Index by energy, quantum-number and
// coupling-reachability criteria, keeping the matrix problem tractable
// as bases grow combinatorially for pair systems.
//
// What
//
//   - WithEnergyWindow(min, max, provider, at): drop states whose
//     unperturbed energy lies outside [min, max].
//   - WithNRange / WithLRange / WithJRange / WithMRange: drop states
//     with any component key outside the given per-quantum-number
//     range. Axes without an option stay unconstrained.
//   - WithReachability(core, hops, evaluator): keep only states
//     connected to the designated core set within `hops` coupling
//     steps under the selection rules; everything unreachable is
//     dropped. This is the filter that bounds matrix growth for large
//     multi-shell two-particle bases.
//
// Filters apply in the order given. Each produces a new compacted
// Index preserving the survivors' relative order; a pass that drops
// nothing returns its input unchanged (same identity token), which
// makes every filter idempotent:
//
//	Restrict(Restrict(B, W), W) == Restrict(B, W)
//
// The reachability pass is a breadth-first walk over basis positions
// whose adjacency is "some operator allows this coupling", seeded with
// the core states at depth 0 and bounded by the hop count. Candidate
// partners come from the coarse selection index, not a dense scan.
//
// Errors
//
//   - ErrBadWindow    — energy window with min > max.
//   - ErrBadRange     — quantum-number range with min > max.
//   - ErrBadHops      — negative hop bound.
//   - ErrEmptyCore    — reachability without core states.
//   - ErrNilProvider  — energy window without a provider.
//   - ErrNilEvaluator — reachability without an evaluator.
//   - selection.ErrProvider — energy collaborator failure (wrapped).
//
// Complexity: predicate filters are O(N); reachability is O(V + E)
// over the candidate adjacency, V ≤ N.
package restrict
