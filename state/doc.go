// Package state defines the immutable quantum-state values the rest of
// pairspec is built on: StateKey tuples of quantum numbers, the species
// Registry that bounds them, and the spectroscopic label grammar that
// constructs them.
//
// What
//
//   - StateKey: (species, particle, n, l, j, m) value type with
//     component-wise equality and a total ordering for deterministic
//     basis layouts.
//   - State: the capability interface over the two representations,
//     Single (one particle) and Pair (two particles). Construction from
//     a label is variant-dispatched through FromLabel.
//   - Registry: explicit table of known species and their
//     quantum-number bounds; passed in wherever labels are parsed, so
//     there is no process-wide species state.
//
// Label grammar
//
//	label       = [ particle "_" ] species ":" n "," l "," j "," m
//	particle    = "0" | "1"
//	species     = registered species tag, e.g. "Rb" or "Cs"
//	n           = positive integer (principal quantum number)
//	l           = non-negative integer or spectroscopic letter
//	              (s=0, p=1, d=2, f=3, g=4, h=5, i=6, k=7, ...)
//	j, m        = half-integer, written as a decimal ("1.5") or a
//	              fraction ("3/2"); m may be negative
//
// Examples: "Rb:43,d,5/2,1/2", "1_Cs:50,0,0.5,-0.5".
//
// Two-particle labels are two single-particle labels joined by ";"
// (first token → particle 0, second → particle 1), or one shared token
// replicated to both particles by tagging it "0_" and "1_".
//
// Validity
//
//	n ≥ 1, 0 ≤ l < n (and l ≤ MaxL, n ≤ MaxN when the registry bounds
//	them), j = l ± 1/2 (one spin-1/2 valence electron), |m| ≤ j with
//	m on the same half-integer grid as j.
//
// Errors
//
//   - ErrLabelParse   — malformed or out-of-range label; never repaired.
//   - ErrNilRegistry  — nil *Registry passed to a constructor.
//   - ErrSpeciesKnown — duplicate species registration.
//
// Parsing is total over the grammar above: every input either yields a
// valid key or fails with an error wrapping ErrLabelParse.
package state
