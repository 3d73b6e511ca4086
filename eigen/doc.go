// Package eigen diagonalizes assembled Hermitian matrices, producing
// the Spectrum of one (sub)system at one parameter point.
//
// What
//
//   - Solve, full mode (default): every eigenpair, eigenvalues in
//     ascending order, eigenvectors in the matrix's basis coordinates.
//     Purely real matrices go straight through gonum's symmetric
//     eigendecomposition; genuinely complex Hermitian matrices are
//     solved through the standard real embedding
//     [[A, −B], [B, A]] of H = A + iB, whose spectrum is that of H
//     with every eigenvalue doubled — the doubles are collapsed and
//     the eigenvectors recombined as u = x + iy.
//   - Solve, windowed mode (WithWindow(count, near)): the `count`
//     eigenpairs nearest the target value, found by shifted inverse
//     iteration with deflation — the tool for tracking one level
//     across a sweep without resolving the full spectrum. Iteration
//     is bounded; failure to converge surfaces ErrConvergence and
//     never a partial or garbage result.
//
// The solver assumes Hermiticity (an assembly invariant of the
// hamiltonian package) and nothing more; indefinite matrices are
// fine.
//
// Errors
//
//   - ErrNilMatrix     — nil input matrix.
//   - ErrBadWindow     — window count outside [1, Dim].
//   - ErrBadOption     — non-positive iteration cap or tolerance.
//   - ErrFactorization — the dense eigendecomposition failed.
//   - ErrConvergence   — windowed iteration exhausted its bound.
//
// Complexity: full mode is O(n³) (O((2n)³) when complex); windowed
// mode is one LU factorization plus O(count · iterations · n²).
package eigen
