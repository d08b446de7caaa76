// Package ops provides eigendecomposition for the matrix package, used by
// the tangent-plane estimator to extract a principal frame from a 3x3
// covariance matrix.
package ops

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/surfrecon/matrix"
)

// ErrNotSymmetric is returned when the input matrix is not symmetric.
var ErrNotSymmetric = errors.New("ops: matrix is not symmetric")

// ErrEigenFailed is returned if the algorithm does not converge within max iterations.
var ErrEigenFailed = errors.New("ops: eigen decomposition did not converge")

// Eigen performs Jacobi eigenvalue decomposition on a symmetric matrix m.
// It returns the eigenvalues and the matrix of eigenvectors Q (columns of
// Q, column i paired with eigs[i]). tol is the convergence threshold on the
// largest off-diagonal magnitude; maxIter caps the number of rotations
// (one per iteration).
// Complexity: O(n^2) per rotation, worst case O(maxIter*n^2).
func Eigen(m matrix.Matrix, tol float64, maxIter int) ([]float64, matrix.Matrix, error) {
	n, cols := m.Rows(), m.Cols()
	if n != cols {
		return nil, nil, fmt.Errorf("Eigen: non-square %dx%d: %w", n, cols, matrix.ErrMatrixDimensionMismatch)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			aij, _ := m.At(i, j)
			aji, _ := m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return nil, nil, ErrNotSymmetric
			}
		}
	}

	A := m.Clone()
	Q, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, nil, fmt.Errorf("Eigen: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = Q.Set(i, i, 1.0)
	}

	converged := false
	for iter := 0; iter < maxIter; iter++ {
		// Locate the largest off-diagonal element; this is the classic
		// (slow but simple) Jacobi pivot strategy, fine for the small
		// (3x3) matrices this package is used for.
		p, q, maxOff := 0, 1, 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off, _ := A.At(i, j)
				if math.Abs(off) > maxOff {
					maxOff, p, q = math.Abs(off), i, j
				}
			}
		}
		if maxOff < tol {
			converged = true
			break
		}

		app, _ := A.At(p, p)
		aqq, _ := A.At(q, q)
		apq, _ := A.At(p, q)
		theta := (aqq - app) / (2 * apq)
		t := math.Copysign(1.0/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
		c := 1.0 / math.Sqrt(t*t+1)
		s := t * c

		// Rotate rows/cols p and q against every other index, reading both
		// old values before writing either so neighboring updates in the
		// same sweep never observe a half-rotated state.
		for i := 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, _ := A.At(i, p)
			aiq, _ := A.At(i, q)
			newIP := c*aip - s*aiq
			newIQ := s*aip + c*aiq
			_ = A.Set(i, p, newIP)
			_ = A.Set(p, i, newIP)
			_ = A.Set(i, q, newIQ)
			_ = A.Set(q, i, newIQ)
		}
		_ = A.Set(p, p, c*c*app-2*c*s*apq+s*s*aqq)
		_ = A.Set(q, q, s*s*app+2*c*s*apq+c*c*aqq)
		_ = A.Set(p, q, 0.0)
		_ = A.Set(q, p, 0.0)

		for i := 0; i < n; i++ {
			qip, _ := Q.At(i, p)
			qiq, _ := Q.At(i, q)
			_ = Q.Set(i, p, c*qip-s*qiq)
			_ = Q.Set(i, q, s*qip+c*qiq)
		}
	}
	if !converged {
		return nil, nil, ErrEigenFailed
	}

	eigs := make([]float64, n)
	for i := 0; i < n; i++ {
		eigs[i], _ = A.At(i, i)
	}

	return eigs, Q, nil
}
