package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Periodic evaluates the exp-sine-squared kernel
//
//	sigmaF^2 * exp(-2 * sum_d sin^2(pi * (u_d - v_d) / p) / l^2)
//
// Each dimension adds its own sin^2 term to an accumulator and the exponential is
// applied once, after all dimensions are summed. p = 0 and l = 0 are not trapped.
func Periodic(x1, x2 mat.Matrix, sigmaF, l, p float64) (*mat.Dense, error) {
	n1, n2, d, err := checkDims(x1, x2)
	if err != nil {
		return nil, err
	}
	if n1 == 0 || n2 == 0 {
		return &mat.Dense{}, nil
	}
	logger().Trace().Int("n1", n1).Int("n2", n2).Int("dim", d).Float64("period", p).Msg("computing periodic kernel")

	l2 := l * l
	sigmaF2 := sigmaF * sigmaF

	K := mat.NewDense(n1, n2, nil)
	for dim := 0; dim < d; dim++ {
		// column dim of x1 runs down the rows of K, column dim of x2 across its columns
		for i := 0; i < n1; i++ {
			u := x1.At(i, dim)
			for j := 0; j < n2; j++ {
				s := math.Sin((u - x2.At(j, dim)) * math.Pi / p)
				K.Set(i, j, K.At(i, j)+s*s)
			}
		}
	}

	K.Apply(func(_, _ int, v float64) float64 {
		return sigmaF2 * math.Exp(-2*v/l2)
	}, K)
	return K, nil
}
