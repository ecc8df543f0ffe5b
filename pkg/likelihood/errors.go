package likelihood

import "github.com/pkg/errors"

var (
	// ErrNotPositiveDefinite is returned when K + s2*I stays non positive-definite for
	// every jitter in the budget.
	ErrNotPositiveDefinite = errors.New("cholesky decomposition failed: the kernel matrix might not be positive semi-definite")

	ErrNotSquare     = errors.New("kernel matrix is not square")
	ErrTargetLength  = errors.New("target length does not match kernel matrix")
	ErrInvalidJitter = errors.New("invalid jitter parameters")
)
