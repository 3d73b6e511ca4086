package eigen

import (
	"errors"
	"fmt"
)

// Sentinel errors for diagonalization.
var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("eigen: matrix is nil")

	// ErrBadWindow indicates a window count outside [1, Dim].
	ErrBadWindow = errors.New("eigen: invalid window")

	// ErrBadOption indicates a non-positive iteration cap or tolerance.
	ErrBadOption = errors.New("eigen: invalid option")

	// ErrFactorization indicates the dense eigendecomposition failed.
	ErrFactorization = errors.New("eigen: factorization failed")

	// ErrConvergence indicates the windowed iteration exhausted its
	// bound without converging. No partial result accompanies it.
	ErrConvergence = errors.New("eigen: windowed solve did not converge")

	// ErrIndexRange indicates an eigenpair index outside [0, Len).
	ErrIndexRange = errors.New("eigen: eigenpair index out of range")
)

// Defaults for the iterative (windowed) path.
const (
	// DefaultMaxIterations caps inverse iteration per eigenpair.
	DefaultMaxIterations = 500

	// DefaultTolerance is the relative residual bound declaring an
	// eigenpair converged.
	DefaultTolerance = 1e-8
)

// Spectrum is the ordered result of one diagonalization: eigenvalues
// ascending, each with its eigenvector in the coordinates of the basis
// the matrix was assembled over.
type Spectrum struct {
	values  []float64
	vectors [][]complex128
}

// Len returns the number of eigenpairs.
func (s *Spectrum) Len() int { return len(s.values) }

// Values returns a copy of the eigenvalues in ascending order.
func (s *Spectrum) Values() []float64 {
	return append([]float64(nil), s.values...)
}

// Value returns eigenvalue i.
func (s *Spectrum) Value(i int) (float64, error) {
	if i < 0 || i >= len(s.values) {
		return 0, fmt.Errorf("eigen: value %d of %d: %w", i, len(s.values), ErrIndexRange)
	}
	return s.values[i], nil
}

// Vector returns a copy of the normalized eigenvector of eigenvalue i.
func (s *Spectrum) Vector(i int) ([]complex128, error) {
	if i < 0 || i >= len(s.vectors) {
		return nil, fmt.Errorf("eigen: vector %d of %d: %w", i, len(s.vectors), ErrIndexRange)
	}
	return append([]complex128(nil), s.vectors[i]...), nil
}

// Options configures Solve. Use DefaultOptions and the WithX
// constructors.
type Options struct {
	// Windowed switches to the iterative nearest-to-target mode.
	Windowed bool

	// Count is the number of eigenpairs a windowed solve returns.
	Count int

	// Near is the target value a windowed solve searches around.
	Near float64

	// MaxIterations caps inverse iteration per eigenpair.
	MaxIterations int

	// Tolerance is the relative residual bound for convergence.
	Tolerance float64

	err error
}

// Option mutates Options; invalid values surface when Solve runs.
type Option func(*Options)

// DefaultOptions returns the solver defaults: full spectrum,
// DefaultMaxIterations, DefaultTolerance.
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// WithWindow requests the count eigenpairs nearest the target value
// instead of the full spectrum.
func WithWindow(count int, near float64) Option {
	return func(o *Options) {
		if count < 1 {
			o.err = fmt.Errorf("eigen: window count %d: %w", count, ErrBadWindow)
			return
		}
		o.Windowed = true
		o.Count = count
		o.Near = near
	}
}

// WithMaxIterations overrides the per-eigenpair iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("eigen: max iterations %d: %w", n, ErrBadOption)
			return
		}
		o.MaxIterations = n
	}
}

// WithTolerance overrides the convergence tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol <= 0 {
			o.err = fmt.Errorf("eigen: tolerance %g: %w", tol, ErrBadOption)
			return
		}
		o.Tolerance = tol
	}
}
