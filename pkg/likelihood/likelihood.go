// Package likelihood computes the Gaussian Process log marginal likelihood through a
// jitter-stabilized Cholesky factorization.
package likelihood

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Result holds the terms of a log marginal likelihood evaluation.
//
//	LogLik = -0.5*DataFit - LogDetK - (n/2)*log(2*pi)
//
// LogDetK is sum_i log(L_ii), half of the textbook log-determinant of K + (s2+g)*I.
// Callers rely on this exact value, so it is kept as is.
type Result struct {
	LogLik   float64
	DataFit  float64 // yᵀ (K + (s2+g)I)^-1 y
	LogDetK  float64
	Jitter   float64
	Attempts int
}

// Evaluate factorizes K + s2*I with the jitter schedule and returns every term of the
// log marginal likelihood of y.
func (e *Evaluator) Evaluate(K mat.Matrix, y mat.Vector, s2 float64) (Result, error) {
	n, c := K.Dims()
	if n != c {
		return Result{}, errors.Wrapf(ErrNotSquare, "got %dx%d", n, c)
	}
	if y.Len() != n {
		return Result{}, errors.Wrapf(ErrTargetLength, "kernel is %dx%d, targets have length %d", n, n, y.Len())
	}
	if n == 0 {
		return Result{}, nil
	}

	f, err := e.Factorize(K, s2)
	if err != nil {
		return Result{}, err
	}

	alpha := mat.NewVecDense(n, nil)
	alpha.CopyVec(y)
	L := f.L.RawTriangular()
	v := alpha.RawVector()
	blas64.Trsv(blas.NoTrans, L, v) // L a' = y
	blas64.Trsv(blas.Trans, L, v)   // Lᵀ a = a'

	dataFit := mat.Dot(y, alpha)
	logDetK := f.SumLogDiag()
	logLik := -0.5*dataFit - logDetK - float64(n)/2.0*log2Pi

	e.log.Debug().
		Int("n", n).
		Float64("noise", s2).
		Float64("jitter", f.Jitter).
		Float64("logLik", logLik).
		Msg("computed log marginal likelihood")

	return Result{
		LogLik:   logLik,
		DataFit:  dataFit,
		LogDetK:  logDetK,
		Jitter:   f.Jitter,
		Attempts: f.Attempts,
	}, nil
}

// LogMarginalLikelihood returns log p(y | K, s2) for a square K and len(y) == n.
func (e *Evaluator) LogMarginalLikelihood(K mat.Matrix, y mat.Vector, s2 float64) (float64, error) {
	res, err := e.Evaluate(K, y, s2)
	if err != nil {
		return 0, err
	}
	return res.LogLik, nil
}
