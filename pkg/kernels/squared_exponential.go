package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SquaredExponential evaluates sigmaF^2 * exp(-||u-v||^2 / (2 l^2)), the usual GP default.
// l = 0 is a caller error and propagates as Inf/NaN.
func SquaredExponential(x1, x2 mat.Matrix, sigmaF, l float64) (*mat.Dense, error) {
	l2 := l * l
	sigmaF2 := sigmaF * sigmaF
	return sqDistFunc(x1, x2, func(sqdist float64) float64 {
		return sigmaF2 * math.Exp(-0.5*sqdist/l2)
	})
}
