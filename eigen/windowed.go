package eigen

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pairspec/hamiltonian"
)

// inverseSeed keeps windowed runs deterministic across processes.
const inverseSeed = 0x5eed

// maxShiftBumps bounds how often an exactly singular shift is nudged
// before the factorization is declared failed.
const maxShiftBumps = 5

// solveWindowed extracts the Count eigenpairs nearest Near by shifted
// inverse iteration on (S − σI), deflating each converged vector from
// the search space. Complex matrices run on the real embedding, where
// every eigenvalue carries a partner vector that is deflated alongside
// its mate so the next iteration cannot rediscover the same pair.
func solveWindowed(m *hamiltonian.Matrix, o Options) (*Spectrum, error) {
	isReal := m.IsReal()
	var (
		s   *mat.SymDense
		err error
	)
	if isReal {
		s, err = m.SymDense()
	} else {
		s, err = embed(m)
	}
	if err != nil {
		return nil, err
	}

	it := &inverseIterator{s: s, dim: s.SymmetricDim(), o: o, rng: rand.New(rand.NewSource(inverseSeed))}
	if err := it.factorize(o.Near); err != nil {
		return nil, err
	}

	n := m.Dim()
	out := &Spectrum{}
	for len(out.values) < o.Count {
		v, lambda, err := it.next()
		if err != nil {
			return nil, err
		}
		out.values = append(out.values, lambda)
		if isReal {
			u := make([]complex128, n)
			for i := 0; i < n; i++ {
				u[i] = complex(v.AtVec(i), 0)
			}
			out.vectors = append(out.vectors, u)
		} else {
			u := make([]complex128, n)
			for i := 0; i < n; i++ {
				u[i] = complex(v.AtVec(i), v.AtVec(n+i))
			}
			out.vectors = append(out.vectors, u)
			it.deflate(partner(v))
		}
	}
	sortSpectrum(out)
	return out, nil
}

// inverseIterator runs shifted inverse iteration with deflation over a
// real symmetric matrix.
type inverseIterator struct {
	s     *mat.SymDense
	dim   int
	o     Options
	rng   *rand.Rand
	lu    mat.LU
	sigma float64
	found []*mat.VecDense
}

// factorize builds the LU decomposition of S − σI. An exactly singular
// shift (σ on an eigenvalue) is nudged away and retried; a slightly
// ill-conditioned shift is exactly what inverse iteration wants and is
// kept as is.
func (it *inverseIterator) factorize(sigma float64) error {
	for bump := 0; ; bump++ {
		shifted := mat.NewDense(it.dim, it.dim, nil)
		for i := 0; i < it.dim; i++ {
			for j := 0; j < it.dim; j++ {
				shifted.Set(i, j, it.s.At(i, j))
			}
			shifted.Set(i, i, shifted.At(i, i)-sigma)
		}
		it.lu.Factorize(shifted)
		if det := it.lu.Det(); det != 0 && !math.IsNaN(det) {
			it.sigma = sigma
			return nil
		}
		if bump >= maxShiftBumps {
			return fmt.Errorf("eigen: shift %g stays singular: %w", sigma, ErrFactorization)
		}
		sigma += 1e-8 * (1 + math.Abs(sigma))
	}
}

// next converges one eigenpair in the deflated search space.
func (it *inverseIterator) next() (*mat.VecDense, float64, error) {
	v := it.freshVector()
	var w, sw, res mat.VecDense
	for step := 0; step < it.o.MaxIterations; step++ {
		if err := it.lu.SolveVecTo(&w, false, v); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) {
				return nil, 0, fmt.Errorf("eigen: inverse step: %w", ErrFactorization)
			}
		}
		it.project(&w)
		nrm := mat.Norm(&w, 2)
		if nrm < 1e-300 {
			// Iterate collapsed into the deflated span; restart.
			v = it.freshVector()
			continue
		}
		w.ScaleVec(1/nrm, &w)

		sw.MulVec(it.s, &w)
		lambda := mat.Dot(&w, &sw)
		res.AddScaledVec(&sw, -lambda, &w)
		if mat.Norm(&res, 2) <= it.o.Tolerance*(1+math.Abs(lambda)) {
			converged := mat.NewVecDense(it.dim, nil)
			converged.CopyVec(&w)
			it.deflate(converged)
			return converged, lambda, nil
		}
		v.CopyVec(&w)
	}
	return nil, 0, fmt.Errorf("eigen: no eigenpair near %g within %d iterations: %w",
		it.sigma, it.o.MaxIterations, ErrConvergence)
}

// freshVector draws a random unit vector orthogonal to everything
// already found.
func (it *inverseIterator) freshVector() *mat.VecDense {
	for {
		v := mat.NewVecDense(it.dim, nil)
		for i := 0; i < it.dim; i++ {
			v.SetVec(i, it.rng.NormFloat64())
		}
		it.project(v)
		if nrm := mat.Norm(v, 2); nrm > 1e-8 {
			v.ScaleVec(1/nrm, v)
			return v
		}
	}
}

// project removes the components along every deflated vector.
func (it *inverseIterator) project(v *mat.VecDense) {
	for _, f := range it.found {
		v.AddScaledVec(v, -mat.Dot(v, f), f)
	}
}

// deflate locks a converged direction out of subsequent searches.
func (it *inverseIterator) deflate(v *mat.VecDense) {
	it.found = append(it.found, v)
}

// partner maps an embedding eigenvector (x; y) to its degenerate mate
// (−y; x), which represents i·u and is always orthogonal to (x; y).
func partner(v *mat.VecDense) *mat.VecDense {
	dim := v.Len()
	n := dim / 2
	p := mat.NewVecDense(dim, nil)
	for i := 0; i < n; i++ {
		p.SetVec(i, -v.AtVec(n+i))
		p.SetVec(n+i, v.AtVec(i))
	}
	return p
}

// sortSpectrum orders eigenpairs ascending by eigenvalue.
func sortSpectrum(s *Spectrum) {
	order := make([]int, len(s.values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return s.values[order[a]] < s.values[order[b]] })
	vals := make([]float64, len(order))
	vecs := make([][]complex128, len(order))
	for i, idx := range order {
		vals[i] = s.values[idx]
		vecs[i] = s.vectors[idx]
	}
	s.values, s.vectors = vals, vecs
}
