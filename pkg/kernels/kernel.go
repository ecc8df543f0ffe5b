package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kernel evaluates the generic Gaussian kernel k(u, v) = exp(-||u-v||^2 / b).
//
// There is no magnitude scaling, so the diagonal of Kernel(x, x, b) is exactly 1.
// A zero bandwidth is not trapped: off-diagonal entries go to exp(-Inf) = 0 and
// coincident points produce NaN.
func Kernel(x1, x2 mat.Matrix, b float64) (*mat.Dense, error) {
	return sqDistFunc(x1, x2, func(sqdist float64) float64 {
		return math.Exp(-sqdist / b)
	})
}
