package kernels

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var kernelLog atomic.Pointer[zerolog.Logger]

func init() {
	SetLogger(zerolog.Nop())
}

// SetLogger routes kernel trace logs to l. Kernels log nothing until it is called.
func SetLogger(l zerolog.Logger) {
	kernelLog.Store(&l)
}

func logger() *zerolog.Logger {
	return kernelLog.Load()
}

func checkDims(x1, x2 mat.Matrix) (n1, n2, d int, err error) {
	n1, d1 := x1.Dims()
	n2, d2 := x2.Dims()
	if d1 != d2 {
		return 0, 0, 0, errors.Wrapf(ErrDimensionMismatch, "x1 is %dx%d, x2 is %dx%d", n1, d1, n2, d2)
	}
	return n1, n2, d1, nil
}

func rows(x mat.Matrix) [][]float64 {
	n, _ := x.Dims()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = mat.Row(nil, i, x)
	}
	return out
}

// sqDistFunc fills a new n1 x n2 matrix with f(||x1_i - x2_j||^2).
func sqDistFunc(x1, x2 mat.Matrix, f func(sqdist float64) float64) (*mat.Dense, error) {
	n1, n2, d, err := checkDims(x1, x2)
	if err != nil {
		return nil, err
	}
	logger().Trace().Int("n1", n1).Int("n2", n2).Int("dim", d).Msg("computing pairwise squared distances")

	if n1 == 0 || n2 == 0 {
		return &mat.Dense{}, nil
	}

	r1, r2 := rows(x1), rows(x2)
	diff := make([]float64, d)
	K := mat.NewDense(n1, n2, nil)
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			floats.SubTo(diff, r1[i], r2[j])
			K.Set(i, j, f(floats.Dot(diff, diff)))
		}
	}
	return K, nil
}
