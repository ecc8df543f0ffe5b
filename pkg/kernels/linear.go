package kernels

import (
	"gonum.org/v1/gonum/mat"
)

// Linear evaluates sigmaF^2 * (x1 x2ᵀ), the scaled Gram matrix of raw dot products.
func Linear(x1, x2 mat.Matrix, sigmaF float64) (*mat.Dense, error) {
	n1, n2, d, err := checkDims(x1, x2)
	if err != nil {
		return nil, err
	}
	if n1 == 0 || n2 == 0 || d == 0 {
		return &mat.Dense{}, nil
	}
	logger().Trace().Int("n1", n1).Int("n2", n2).Int("dim", d).Msg("computing linear kernel")

	var K mat.Dense
	K.Mul(x1, x2.T())
	K.Scale(sigmaF*sigmaF, &K)
	return &K, nil
}
