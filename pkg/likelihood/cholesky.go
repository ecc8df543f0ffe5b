package likelihood

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Factor is a successful jittered Cholesky factorization of K + (s2 + Jitter)*I.
type Factor struct {
	L        *mat.TriDense // lower triangular
	Jitter   float64       // jitter that made the factorization succeed
	Attempts int
}

// SumLogDiag returns sum_i log(L_ii).
func (f *Factor) SumLogDiag() float64 {
	n, _ := f.L.Dims()
	var s float64
	for i := 0; i < n; i++ {
		s += math.Log(f.L.At(i, i))
	}
	return s
}

// regularize writes K + s2*I + g*I into dst, reading only the lower triangle of K.
func regularize(dst *mat.SymDense, K mat.Matrix, s2, g float64) {
	n := dst.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			dst.SetSym(i, j, K.At(i, j))
		}
		dst.SetSym(i, i, K.At(i, i)+s2+g)
	}
}

// Factorize returns the lower Cholesky factor of K + s2*I + g*I for the first jitter g of
// the schedule that makes the matrix numerically positive-definite. It fails with
// ErrNotPositiveDefinite once g reaches the schedule's Max, and with ErrInvalidJitter
// when e has no valid schedule.
func (e *Evaluator) Factorize(K mat.Matrix, s2 float64) (*Factor, error) {
	if err := e.jitter.validate(); err != nil {
		return nil, err
	}
	n, c := K.Dims()
	if n != c {
		return nil, errors.Wrapf(ErrNotSquare, "got %dx%d", n, c)
	}
	if n == 0 {
		return &Factor{L: &mat.TriDense{}, Jitter: 0, Attempts: 0}, nil
	}

	sym := mat.NewSymDense(n, nil)
	var chol mat.Cholesky
	attempts := 0
	for g := e.jitter.Initial; g < e.jitter.Max; g *= e.jitter.Growth {
		attempts++
		regularize(sym, K, s2, g)
		if chol.Factorize(sym) {
			var L mat.TriDense
			chol.LTo(&L)
			e.log.Trace().Int("n", n).Float64("jitter", g).Int("attempts", attempts).Msg("cholesky factorization succeeded")
			return &Factor{L: &L, Jitter: g, Attempts: attempts}, nil
		}
		e.log.Debug().Int("n", n).Float64("jitter", g).Int("attempt", attempts).Msg("cholesky factorization failed, increasing jitter")
	}

	return nil, errors.Wrapf(ErrNotPositiveDefinite, "n=%d noise=%g attempts=%d max jitter=%g", n, s2, attempts, e.jitter.Max)
}
