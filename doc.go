// Package pairspec constructs and diagonalizes quantum-mechanical
// Hamiltonians for one or two interacting atomic particles, producing
// energy spectra and eigenstates across parameter sweeps (electric or
// magnetic field strength, inter-particle separation).
//
// 🚀 What is pairspec?
//
//	A computation-bound, thread-aware library that brings together:
//		• State labels: spectroscopic labels parsed into quantum-number keys
//		• Basis indexing: stable bidirectional state↔position mapping
//		• Selection rules: structural pruning of forbidden couplings
//		• Assembly: sparse Hermitian Hamiltonians from pluggable providers
//		• Restriction: energy windows, quantum-number ranges, k-hop reachability
//		• Symmetry: exchange/parity block-diagonalization into subspaces
//		• Pair composition: conservation-filtered tensor-product bases
//		• Diagonalization: full and windowed spectra on gonum
//		• Sweeps: fingerprinted result caching and a bounded worker runner
//
// ✨ Why choose pairspec?
//
//   - Correct by construction – Hermiticity, stable ordering and exact
//     symmetry partitions are package invariants, covered by tests
//   - Scales to pair systems – candidate bucketing keeps assembly far
//     below O(N²) even when the tensor-product basis grows combinatorially
//   - Incremental sweeps – previous diagonalizations are reused whenever
//     only coupling strengths change between parameter points
//
// The library is organized as one package per concern:
//
//	state/       — StateKey, species registry, label grammar, Single/Pair variants
//	basis/       — ordered basis Index with identity tokens
//	selection/   — operators, selection rules, candidate index, provider contracts
//	hamiltonian/ — sparse Hermitian matrix type and the assembler
//	restrict/    — energy-window, quantum-number and reachability pruning
//	symmetry/    — invariant-subspace partitioning and block projection
//	pair/        — tensor-product composition and multipole interaction wiring
//	eigen/       — full and windowed Hermitian eigensolver
//	sweep/       — spectrum cache, fingerprints, stores, sweep runner
//	badgerstore/ — persistent sweep store on BadgerDB
//
// Typical flow:
//
//	basis → restrict → symmetry → hamiltonian → eigen
//	          ▲                        ▲
//	        pair                     sweep (cache + runner)
//
//	go get github.com/katalvlaran/pairspec
package pairspec
