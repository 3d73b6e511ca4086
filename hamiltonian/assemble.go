package hamiltonian

import (
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/pairspec/basis"
	"github.com/katalvlaran/pairspec/selection"
	"github.com/katalvlaran/pairspec/state"
)

// Term is one explicit coupling term: <Row|op|Col> with a
// parameter-dependent coefficient. The Hermitian-conjugate term for
// (Col, Row) is implied and never listed separately.
type Term struct {
	Row, Col state.State
	Op       selection.Operator
	Coeff    func(at selection.Params) complex128
}

// Options configures assembly. Use DefaultOptions and the WithX
// constructors.
type Options struct {
	// DropTolerance discards accumulated off-diagonal magnitudes at or
	// below this bound instead of storing them. 0 keeps everything
	// nonzero.
	DropTolerance float64

	// Candidates reuses a prebuilt coarse partner index; when nil,
	// Assemble builds one for the call.
	Candidates *selection.Candidates

	// ExtraTerms are explicit couplings merged into the matrix after
	// the provider-driven pass.
	ExtraTerms []Term

	err error
}

// Option mutates Options; invalid values surface as ErrBadOption when
// Assemble runs.
type Option func(*Options)

// DefaultOptions returns the assembly defaults: keep all nonzeros,
// build a fresh candidate index, no extra terms.
func DefaultOptions() Options {
	return Options{}
}

// WithDropTolerance discards assembled off-diagonal entries with
// magnitude ≤ tol. Negative values are an option violation.
func WithDropTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			o.err = fmt.Errorf("hamiltonian: drop tolerance %g: %w", tol, ErrBadOption)
			return
		}
		o.DropTolerance = tol
	}
}

// WithCandidates reuses a prebuilt selection.Candidates for ix.
func WithCandidates(c *selection.Candidates) Option {
	return func(o *Options) { o.Candidates = c }
}

// WithExtraTerms merges explicit coupling terms into the assembly.
func WithExtraTerms(terms ...Term) Option {
	return func(o *Options) { o.ExtraTerms = append(o.ExtraTerms, terms...) }
}

// Assemble builds the Hermitian matrix of ix at the parameter point:
// diagonal entries from energies, off-diagonal entries from couplings
// over evaluator-approved candidate pairs, plus any explicit extra
// terms. couplings may be nil for diagonal-only systems (ev is then
// unused). Assembly is pure: on error no matrix is returned and no
// shared state has been touched.
func Assemble(
	ix *basis.Index,
	ev *selection.Evaluator,
	energies selection.EnergyProvider,
	couplings selection.CouplingProvider,
	at selection.Params,
	opts ...Option,
) (*Matrix, error) {
	if ix == nil {
		return nil, basis.ErrNilIndex
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if couplings != nil && ev == nil {
		return nil, ErrNilEvaluator
	}

	m, err := NewMatrix(ix.Size())
	if err != nil {
		return nil, err
	}
	if err = assembleDiagonal(m, ix, energies, at); err != nil {
		return nil, err
	}
	if couplings != nil {
		if err = assembleCouplings(m, ix, ev, couplings, at, &o); err != nil {
			return nil, err
		}
	}
	if err = assembleTerms(m, ix, at, o.ExtraTerms); err != nil {
		return nil, err
	}
	return m, nil
}

// assembleDiagonal fills unperturbed (and field-shifted) energies.
func assembleDiagonal(m *Matrix, ix *basis.Index, energies selection.EnergyProvider, at selection.Params) error {
	if energies == nil {
		return nil
	}
	for i := 0; i < ix.Size(); i++ {
		s, err := ix.At(i)
		if err != nil {
			return err
		}
		e, err := energies.Energy(s, at)
		if err != nil {
			return fmt.Errorf("hamiltonian: energy of %q: %w: %w", s.Label(), selection.ErrProvider, err)
		}
		if err = m.Set(i, i, complex(e, 0)); err != nil {
			return err
		}
	}
	return nil
}

// assembleCouplings iterates the upper triangle over candidate
// partners only, summing every allowed operator contribution per pair.
func assembleCouplings(
	m *Matrix,
	ix *basis.Index,
	ev *selection.Evaluator,
	couplings selection.CouplingProvider,
	at selection.Params,
	o *Options,
) error {
	cand := o.Candidates
	if cand == nil {
		var err error
		if cand, err = ev.NewCandidates(ix); err != nil {
			return err
		}
	}
	ops := couplings.Operators()
	for i := 0; i < ix.Size(); i++ {
		a, err := ix.At(i)
		if err != nil {
			return err
		}
		partners, err := cand.For(i)
		if err != nil {
			return err
		}
		for _, j := range partners {
			if j <= i {
				continue // upper triangle once; (j,i) is the mirror
			}
			b, err := ix.At(j)
			if err != nil {
				return err
			}
			sum := complex(0, 0)
			for _, op := range ops {
				if !ev.Allowed(a, b, op) {
					continue
				}
				v, cerr := couplings.Coupling(a, b, op, at)
				if cerr != nil {
					return fmt.Errorf("hamiltonian: coupling %q↔%q by %q: %w: %w",
						a.Label(), b.Label(), op.Tag, selection.ErrProvider, cerr)
				}
				sum += v
			}
			if cmplx.Abs(sum) <= o.DropTolerance {
				continue
			}
			if err = m.Set(i, j, sum); err != nil {
				return err
			}
		}
	}
	return nil
}

// assembleTerms merges explicit terms; each term accumulates into its
// (row, col) element, the conjugate mirror being structural.
func assembleTerms(m *Matrix, ix *basis.Index, at selection.Params, terms []Term) error {
	for _, t := range terms {
		i, err := ix.Lookup(t.Row)
		if err != nil {
			return err
		}
		j, err := ix.Lookup(t.Col)
		if err != nil {
			return err
		}
		if t.Coeff == nil {
			continue
		}
		if err = m.Add(i, j, t.Coeff(at)); err != nil {
			return err
		}
	}
	return nil
}
