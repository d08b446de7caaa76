package matrix

import "errors"

// Sentinel errors for matrix package operations.
var (
	// ErrInvalidDimensions indicates a non-positive row or column count was requested.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates an At/Set index fell outside the matrix bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf indicates a Set call was rejected by the finiteness policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf value rejected")

	// ErrMatrixDimensionMismatch indicates two matrices have incompatible
	// dimensions for the requested operation (e.g. Eigen on a non-square matrix).
	ErrMatrixDimensionMismatch = errors.New("matrix: dimension mismatch")
)
