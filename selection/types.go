package selection

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/pairspec/state"
)

// Sentinel errors for selection-rule evaluation.
var (
	// ErrNoOperators indicates an Evaluator was constructed without operators.
	ErrNoOperators = errors.New("selection: no operators")

	// ErrBadOperator indicates a negative multipole order.
	ErrBadOperator = errors.New("selection: invalid operator")

	// ErrProvider indicates a matrix-element collaborator failed; the
	// underlying cause is wrapped and propagated verbatim.
	ErrProvider = errors.New("selection: provider failure")

	// ErrNilIndex indicates a nil *basis.Index argument.
	ErrNilIndex = errors.New("selection: index is nil")

	// ErrPositionRange indicates a position outside the indexed basis.
	ErrPositionRange = errors.New("selection: position out of range")
)

// Params is one parameter point of a sweep: named external parameters
// (field strengths, inter-particle separation) in caller-chosen units.
type Params map[string]float64

// Operator identifies a coupling operator and its multipole order(s).
// Order acts on particle 0 (or the sole particle of a single-particle
// state); Order1 acts on particle 1 and is 0 for single-particle
// operators.
type Operator struct {
	Tag    string
	Order  int
	Order1 int
}

// Dipole is the electric-dipole operator (external field terms).
func Dipole() Operator { return Operator{Tag: "E1", Order: 1} }

// Quadrupole is the electric-quadrupole operator.
func Quadrupole() Operator { return Operator{Tag: "E2", Order: 2} }

// Interaction is the inter-particle multipole-multipole operator of
// orders (q0, q1): particle 0 changes by a 2^q0-pole, particle 1 by a
// 2^q1-pole. Orders (1,1) give the leading dipole-dipole term.
func Interaction(q0, q1 int) Operator {
	return Operator{Tag: fmt.Sprintf("V(%d,%d)", q0, q1), Order: q0, Order1: q1}
}

// pairwise reports whether op couples both particle slots.
func (op Operator) pairwise() bool { return op.Order > 0 && op.Order1 > 0 }

// EnergyProvider supplies unperturbed (and field-shifted) diagonal
// energies. Implementations are external collaborators; the core calls
// them as-is and wraps failures in ErrProvider.
type EnergyProvider interface {
	// Energy returns the diagonal energy of s at the parameter point.
	Energy(s state.State, at Params) (float64, error)
}

// CouplingProvider supplies off-diagonal matrix elements for pairs the
// Evaluator has already approved. The active operator set is provider
// configuration, not a package constant.
type CouplingProvider interface {
	// Operators enumerates the coupling operators this provider serves.
	Operators() []Operator

	// Coupling returns the matrix element <a|op|b> at the parameter
	// point. It is only invoked for (a, b, op) already flagged Allowed.
	Coupling(a, b state.State, op Operator, at Params) (complex128, error)
}

// EnergyFunc adapts a plain function to EnergyProvider.
type EnergyFunc func(s state.State, at Params) (float64, error)

// Energy implements EnergyProvider.
func (f EnergyFunc) Energy(s state.State, at Params) (float64, error) { return f(s, at) }
