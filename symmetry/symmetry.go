package symmetry

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/hamiltonian"
	"github.com/katalvlaran/pairspec/state"
)

// Sentinel errors for symmetry reduction.
var (
	// ErrNilOperator indicates Partition was called without an operator.
	ErrNilOperator = errors.New("symmetry: operator is nil")

	// ErrImageRange indicates an operator returned a zero phase.
	ErrImageRange = errors.New("symmetry: operator phase must be ±1")

	// ErrNilMatrix indicates Project was called with a nil matrix.
	ErrNilMatrix = errors.New("symmetry: matrix is nil")

	// ErrDimMismatch indicates the projected matrix does not match the
	// parent basis the subspace was derived from.
	ErrDimMismatch = errors.New("symmetry: matrix dimension mismatch")
)

// Operator is a symmetry of the system: it maps a basis state to its
// image with a real phase, with S² = 1. Image returns ok=false when
// the symmetry does not act on the representation (those states stay
// unsymmetrized).
type Operator interface {
	Image(s state.State) (image state.State, phase float64, ok bool)
}

// Exchange is the particle-exchange symmetry for two-particle systems:
// |ab⟩ ↦ |ba⟩ with phase +1. Single-particle states are not acted on,
// and heteronuclear pairs map to states outside the slot-species label
// convention, which Partition resolves to unsymmetrized singletons.
type Exchange struct{}

// Image implements Operator.
func (Exchange) Image(s state.State) (state.State, float64, bool) {
	p, isPair := s.(state.Pair)
	if !isPair || !p.Homonuclear() {
		return nil, 0, false
	}
	return p.Swapped(), 1, true
}

// Parity is the spatial-parity symmetry: every state is its own image
// with phase (−1)^Σl, so Partition grades the basis into even and odd
// blocks without forming combinations.
type Parity struct{}

// Image implements Operator.
func (Parity) Image(s state.State) (state.State, float64, bool) {
	sum := 0
	for _, k := range s.Keys() {
		sum += k.L
	}
	if sum%2 != 0 {
		return s, -1, true
	}
	return s, 1, true
}

// Sector labels an invariant subspace by its symmetry eigenvalue.
type Sector int

const (
	// None collects states the symmetry cannot pair; they stay
	// unsymmetrized.
	None Sector = iota

	// Symmetric is the +1 eigenvalue sector.
	Symmetric

	// Antisymmetric is the −1 eigenvalue sector.
	Antisymmetric
)

// String renders the sector tag.
func (s Sector) String() string {
	switch s {
	case Symmetric:
		return "+1"
	case Antisymmetric:
		return "-1"
	default:
		return "none"
	}
}

// Component is one parent-basis contribution to a subspace vector.
type Component struct {
	Position int
	Coeff    float64
}

// Subspace is one invariant block: an ordered list of orthonormal
// vectors over parent positions. Vector i owns parent position
// Owned()[i]; ownership sets of the subspaces of one Partition cover
// the parent basis exactly once.
type Subspace struct {
	sector    Sector
	parentDim int
	vectors   [][]Component
	owned     []int
}

// Sector returns the symmetry eigenvalue label of the block.
func (sub *Subspace) Sector() Sector { return sub.sector }

// Dim returns the number of vectors in the block.
func (sub *Subspace) Dim() int { return len(sub.vectors) }

// Owned returns the parent positions owned by the block's vectors,
// aligned with vector order.
func (sub *Subspace) Owned() []int {
	return append([]int(nil), sub.owned...)
}

// Vector returns the components of vector i.
func (sub *Subspace) Vector(i int) ([]Component, error) {
	if i < 0 || i >= len(sub.vectors) {
		return nil, fmt.Errorf("symmetry: vector %d of %d: %w", i, len(sub.vectors), basis.ErrPositionRange)
	}
	return append([]Component(nil), sub.vectors[i]...), nil
}

// Project restricts a parent-basis Hamiltonian to the block:
// B[r][c] = Σ v_r[i]·M[i][j]·v_c[j]. Elements between different
// subspaces are zero by the commutation of the symmetry with the
// Hamiltonian and are never computed here.
func (sub *Subspace) Project(m *hamiltonian.Matrix) (*hamiltonian.Matrix, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if m.Dim() != sub.parentDim {
		return nil, fmt.Errorf("symmetry: matrix dim %d over parent dim %d: %w",
			m.Dim(), sub.parentDim, ErrDimMismatch)
	}
	out, err := hamiltonian.NewMatrix(len(sub.vectors))
	if err != nil {
		return nil, err
	}
	for r := range sub.vectors {
		for c := r; c < len(sub.vectors); c++ {
			sum := complex(0, 0)
			for _, vr := range sub.vectors[r] {
				for _, vc := range sub.vectors[c] {
					v, aerr := m.At(vr.Position, vc.Position)
					if aerr != nil {
						return nil, aerr
					}
					sum += complex(vr.Coeff, 0) * v * complex(vc.Coeff, 0)
				}
			}
			if r == c {
				// Real vectors over a Hermitian parent make the block
				// diagonal real; trim the floating-point residue.
				sum = complex(real(sum), 0)
			}
			if sum == 0 {
				continue
			}
			if err = out.Set(r, c, sum); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Partition splits ix into the invariant subspaces of op. Exchanged
// pairs present in the basis are combined into (|ab⟩ ± phase·|ba⟩)/√2
// vectors; fixed points are graded by their phase sign; states whose
// image is absent (truncation) or on which the symmetry does not act
// stay as unsymmetrized singletons in the None sector. Subspaces with
// zero vectors are omitted.
func Partition(ix *basis.Index, op Operator) ([]*Subspace, error) {
	if ix == nil {
		return nil, basis.ErrNilIndex
	}
	if op == nil {
		return nil, ErrNilOperator
	}

	subs := map[Sector]*Subspace{
		Symmetric:     {sector: Symmetric, parentDim: ix.Size()},
		Antisymmetric: {sector: Antisymmetric, parentDim: ix.Size()},
		None:          {sector: None, parentDim: ix.Size()},
	}
	add := func(sec Sector, owned int, vec []Component) {
		subs[sec].vectors = append(subs[sec].vectors, vec)
		subs[sec].owned = append(subs[sec].owned, owned)
	}

	done := make([]bool, ix.Size())
	inv := 1 / math.Sqrt2
	for p := 0; p < ix.Size(); p++ {
		if done[p] {
			continue
		}
		done[p] = true
		s, err := ix.At(p)
		if err != nil {
			return nil, err
		}
		img, phase, ok := op.Image(s)
		if !ok {
			add(None, p, []Component{{Position: p, Coeff: 1}})
			continue
		}
		if phase != 1 && phase != -1 {
			return nil, fmt.Errorf("symmetry: image of %q has phase %g: %w", s.Label(), phase, ErrImageRange)
		}
		if img == s {
			// Fixed point: a one-dimensional eigenspace with the
			// operator's own phase as eigenvalue.
			if phase > 0 {
				add(Symmetric, p, []Component{{Position: p, Coeff: 1}})
			} else {
				add(Antisymmetric, p, []Component{{Position: p, Coeff: 1}})
			}
			continue
		}
		q, err := ix.Lookup(img)
		if err != nil {
			if errors.Is(err, basis.ErrNotFound) {
				// The partner was truncated away; the state cannot be
				// symmetrized within this basis.
				add(None, p, []Component{{Position: p, Coeff: 1}})
				continue
			}
			return nil, err
		}
		done[q] = true
		lo, hi := p, q
		if lo > hi {
			lo, hi = hi, lo
		}
		add(Symmetric, lo, []Component{{Position: p, Coeff: inv}, {Position: q, Coeff: phase * inv}})
		add(Antisymmetric, hi, []Component{{Position: p, Coeff: inv}, {Position: q, Coeff: -phase * inv}})
	}

	out := make([]*Subspace, 0, 3)
	for _, sec := range []Sector{Symmetric, Antisymmetric, None} {
		if subs[sec].Dim() > 0 {
			out = append(out, subs[sec])
		}
	}
	return out, nil
}
