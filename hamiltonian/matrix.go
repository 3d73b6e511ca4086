package hamiltonian

import (
	"errors"
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for matrix construction and assembly.
var (
	// ErrBadDim indicates a non-positive matrix dimension.
	ErrBadDim = errors.New("hamiltonian: invalid dimension")

	// ErrOutOfRange indicates an index outside [0, Dim).
	ErrOutOfRange = errors.New("hamiltonian: index out of range")

	// ErrNotHermitian indicates a complex value written to the diagonal.
	ErrNotHermitian = errors.New("hamiltonian: diagonal entry must be real")

	// ErrComplexMatrix indicates a real export of a matrix holding
	// complex entries.
	ErrComplexMatrix = errors.New("hamiltonian: matrix has complex entries")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("hamiltonian: matrix is nil")

	// ErrNilEvaluator indicates coupling assembly without an Evaluator.
	ErrNilEvaluator = errors.New("hamiltonian: evaluator is nil")

	// ErrBadOption indicates an invalid assembly option value.
	ErrBadOption = errors.New("hamiltonian: invalid option")
)

// entry addresses one stored upper-triangle element, row ≤ col.
type entry struct {
	row, col int
}

// Matrix is a sparse Hermitian complex matrix over basis positions.
// Only the upper triangle (including the diagonal) is stored; the
// lower triangle is mirrored as the complex conjugate on read, so a
// Matrix is Hermitian by construction.
type Matrix struct {
	dim   int
	upper map[entry]complex128
}

// NewMatrix allocates a dim×dim zero matrix.
func NewMatrix(dim int) (*Matrix, error) {
	if dim < 1 {
		return nil, fmt.Errorf("hamiltonian: dimension %d: %w", dim, ErrBadDim)
	}
	return &Matrix{dim: dim, upper: make(map[entry]complex128)}, nil
}

// Dim returns the matrix dimension.
func (m *Matrix) Dim() int { return m.dim }

// NNZ returns the number of stored (upper-triangle) nonzeros.
func (m *Matrix) NNZ() int { return len(m.upper) }

// At returns element (i, j); the lower triangle is the conjugate of
// the stored upper triangle.
func (m *Matrix) At(i, j int) (complex128, error) {
	if err := m.check(i, j); err != nil {
		return 0, err
	}
	if i <= j {
		return m.upper[entry{row: i, col: j}], nil
	}
	return cmplx.Conj(m.upper[entry{row: j, col: i}]), nil
}

// Set writes element (i, j) and, implicitly, its Hermitian-conjugate
// mirror. Diagonal writes must be real. Writing an exact zero deletes
// the stored entry.
func (m *Matrix) Set(i, j int, v complex128) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	if i == j && imag(v) != 0 {
		return fmt.Errorf("hamiltonian: set (%d,%d) to %v: %w", i, j, v, ErrNotHermitian)
	}
	at := entry{row: i, col: j}
	if i > j {
		at = entry{row: j, col: i}
		v = cmplx.Conj(v)
	}
	if v == 0 {
		delete(m.upper, at)
		return nil
	}
	m.upper[at] = v
	return nil
}

// Add accumulates v into element (i, j).
func (m *Matrix) Add(i, j int, v complex128) error {
	cur, err := m.At(i, j)
	if err != nil {
		return err
	}
	return m.Set(i, j, cur+v)
}

// IsReal reports whether every stored entry is purely real.
func (m *Matrix) IsReal() bool {
	for _, v := range m.upper {
		if imag(v) != 0 {
			return false
		}
	}
	return true
}

// Dense exports the full Hermitian matrix as a gonum CDense.
func (m *Matrix) Dense() *mat.CDense {
	out := mat.NewCDense(m.dim, m.dim, nil)
	for at, v := range m.upper {
		out.Set(at.row, at.col, v)
		if at.row != at.col {
			out.Set(at.col, at.row, cmplx.Conj(v))
		}
	}
	return out
}

// SymDense exports a purely real matrix as a gonum SymDense, or fails
// with ErrComplexMatrix.
func (m *Matrix) SymDense() (*mat.SymDense, error) {
	if !m.IsReal() {
		return nil, ErrComplexMatrix
	}
	out := mat.NewSymDense(m.dim, nil)
	for at, v := range m.upper {
		out.SetSym(at.row, at.col, real(v))
	}
	return out, nil
}

func (m *Matrix) check(i, j int) error {
	if i < 0 || i >= m.dim || j < 0 || j >= m.dim {
		return fmt.Errorf("hamiltonian: index (%d,%d) of dim %d: %w", i, j, m.dim, ErrOutOfRange)
	}
	return nil
}
