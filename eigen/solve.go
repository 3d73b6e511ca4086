package eigen

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pairspec/hamiltonian"
)

// Solve diagonalizes a Hermitian matrix. Full mode (default) returns
// every eigenpair ascending; WithWindow(count, near) returns the count
// eigenpairs nearest the target. The matrix is not modified.
func Solve(m *hamiltonian.Matrix, opts ...Option) (*Spectrum, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.Windowed {
		if o.Count > m.Dim() {
			return nil, fmt.Errorf("eigen: window count %d over dim %d: %w", o.Count, m.Dim(), ErrBadWindow)
		}
		return solveWindowed(m, o)
	}
	if m.IsReal() {
		return solveFullReal(m)
	}
	return solveFullComplex(m)
}

// solveFullReal diagonalizes the purely real case directly.
func solveFullReal(m *hamiltonian.Matrix) (*Spectrum, error) {
	sym, err := m.SymDense()
	if err != nil {
		return nil, err
	}
	var es mat.EigenSym
	if !es.Factorize(sym, true) {
		return nil, ErrFactorization
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	n := m.Dim()
	out := &Spectrum{values: vals, vectors: make([][]complex128, n)}
	for k := 0; k < n; k++ {
		u := make([]complex128, n)
		for i := 0; i < n; i++ {
			u[i] = complex(vecs.At(i, k), 0)
		}
		out.vectors[k] = u
	}
	return out, nil
}

// solveFullComplex diagonalizes H = A + iB through the real symmetric
// embedding E = [[A, −B], [B, A]] of twice the dimension. E carries
// the spectrum of H with every eigenvalue doubled; the doubles are
// collapsed cluster-wise and each embedding vector (x; y) recombines
// into the complex eigenvector u = x + iy.
func solveFullComplex(m *hamiltonian.Matrix) (*Spectrum, error) {
	n := m.Dim()
	e, err := embed(m)
	if err != nil {
		return nil, err
	}
	var es mat.EigenSym
	if !es.Factorize(e, true) {
		return nil, ErrFactorization
	}
	vals := es.Values(nil)
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	scale := 1.0
	for _, v := range vals {
		if a := math.Abs(v); a > scale {
			scale = a
		}
	}
	clusterEps := 1e-8 * scale

	out := &Spectrum{}
	k := 0
	for k < 2*n {
		// One cluster of numerically equal eigenvalues: an even number
		// of embedding copies for a physical multiplicity of half that.
		end := k + 1
		for end < 2*n && vals[end]-vals[k] <= clusterEps {
			end++
		}
		if (end-k)%2 != 0 {
			if end < 2*n {
				end++
			} else {
				return nil, fmt.Errorf("eigen: unpaired embedding eigenvalue %g: %w", vals[k], ErrFactorization)
			}
		}
		want := (end - k) / 2
		accepted, aerr := collapseCluster(&vecs, n, k, end, want)
		if aerr != nil {
			return nil, aerr
		}
		for t := 0; t < want; t++ {
			out.values = append(out.values, vals[k+2*t])
			out.vectors = append(out.vectors, accepted[t])
		}
		k = end
	}
	return out, nil
}

// collapseCluster extracts `want` orthonormal complex eigenvectors
// from the embedding columns [from, to) of one degenerate cluster.
// Each column collapses to u = x + iy; columns parallel to already
// accepted vectors (the i·u copies) are skipped by Gram-Schmidt.
func collapseCluster(vecs *mat.Dense, n, from, to, want int) ([][]complex128, error) {
	accepted := make([][]complex128, 0, want)
	for col := from; col < to && len(accepted) < want; col++ {
		u := make([]complex128, n)
		for i := 0; i < n; i++ {
			u[i] = complex(vecs.At(i, col), vecs.At(n+i, col))
		}
		for _, a := range accepted {
			c := dotc(a, u)
			for i := range u {
				u[i] -= c * a[i]
			}
		}
		if nrm := norm(u); nrm > 1e-6 {
			for i := range u {
				u[i] = complex(real(u[i])/nrm, imag(u[i])/nrm)
			}
			accepted = append(accepted, u)
		}
	}
	if len(accepted) < want {
		return nil, fmt.Errorf("eigen: degenerate cluster yields %d of %d vectors: %w",
			len(accepted), want, ErrFactorization)
	}
	return accepted, nil
}

// embed builds the real symmetric embedding of a Hermitian matrix.
func embed(m *hamiltonian.Matrix) (*mat.SymDense, error) {
	n := m.Dim()
	e := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			a, b := real(v), imag(v)
			e.SetSym(i, j, a)
			e.SetSym(n+i, n+j, a)
			if i != j {
				// Top-right block holds −B; its mirror is B below.
				e.SetSym(i, n+j, -b)
				e.SetSym(j, n+i, b)
			}
		}
	}
	return e, nil
}

// dotc is the complex inner product ⟨a, b⟩ with a conjugated.
func dotc(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += complex(real(a[i]), -imag(a[i])) * b[i]
	}
	return sum
}

// norm is the Euclidean norm of a complex vector.
func norm(u []complex128) float64 {
	var sum float64
	for _, v := range u {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}
