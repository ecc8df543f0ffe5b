package likelihood

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/tensorplex-labs/gpkern/pkg/kernels"
)

type LikelihoodTestSuite struct {
	suite.Suite
	evaluator *Evaluator
}

func (s *LikelihoodTestSuite) SetupTest() {
	e, err := NewEvaluator()
	s.Require().NoError(err)
	s.evaluator = e
}

func TestLikelihoodTestSuite(t *testing.T) {
	suite.Run(t, new(LikelihoodTestSuite))
}

func (s *LikelihoodTestSuite) TestDiagonalClosedForm() {
	const (
		c  = 2.0
		s2 = 0.5
	)
	y := []float64{1, -2, 0.5}
	n := len(y)
	K := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		K.Set(i, i, c)
	}

	got, err := LogMarginalLikelihood(K, mat.NewVecDense(n, y), s2)
	s.Require().NoError(err)

	v := c + s2 + DefaultJitterParams().Initial
	var sumSq float64
	for _, yi := range y {
		sumSq += yi * yi
	}
	want := -0.5*sumSq/v - float64(n)/2*math.Log(v) - float64(n)/2*math.Log(2*math.Pi)
	s.InDelta(want, got, 1e-12)

	// independent identical variances: sum of univariate normal log-densities
	var direct float64
	for _, yi := range y {
		direct += -0.5*yi*yi/v - 0.5*math.Log(2*math.Pi*v)
	}
	s.InDelta(direct, got, 1e-12)
}

func (s *LikelihoodTestSuite) TestMatchesMultivariateNormal() {
	x := mat.NewDense(5, 2, []float64{
		0.0, 0.1,
		0.4, -0.3,
		1.1, 0.8,
		-0.7, 0.2,
		2.0, -1.5,
	})
	K, err := kernels.SquaredExponential(x, x, 1.2, 0.9)
	s.Require().NoError(err)
	y := []float64{0.3, -0.1, 1.2, 0.4, -0.8}
	const s2 = 0.1

	res, err := s.evaluator.Evaluate(K, mat.NewVecDense(len(y), y), s2)
	s.Require().NoError(err)
	s.Equal(1, res.Attempts)

	sigma := mat.NewSymDense(5, nil)
	for i := 0; i < 5; i++ {
		for j := i; j < 5; j++ {
			v := K.At(i, j)
			if i == j {
				v += s2 + res.Jitter
			}
			sigma.SetSym(i, j, v)
		}
	}
	normal, ok := distmv.NewNormal(make([]float64, 5), sigma, nil)
	s.Require().True(ok)
	s.InDelta(normal.LogProb(y), res.LogLik, 1e-9)
}

func (s *LikelihoodTestSuite) TestIndefiniteMatrixFails() {
	K := mat.NewDense(2, 2, []float64{1, 2, 2, 1})
	y := mat.NewVecDense(2, []float64{1, 1})

	got, err := s.evaluator.LogMarginalLikelihood(K, y, 0)
	s.Require().Error(err)
	s.True(errors.Is(err, ErrNotPositiveDefinite), "unexpected error: %v", err)
	s.Contains(err.Error(), "attempts=8")
	s.Zero(got)
}

func (s *LikelihoodTestSuite) TestJitterEscalates() {
	// eigenvalues -5e-4 and 2+5e-4: only jitter above 5e-4 restores positive-definiteness
	K := mat.NewDense(2, 2, []float64{1, 1 + 5e-4, 1 + 5e-4, 1})

	f, err := s.evaluator.Factorize(K, 0)
	s.Require().NoError(err)
	s.Equal(6, f.Attempts)
	s.InDelta(1e-3, f.Jitter, 1e-12)

	var LLt mat.Dense
	LLt.Mul(f.L, f.L.T())
	s.InDelta(1+f.Jitter, LLt.At(0, 0), 1e-12)
	s.InDelta(1+5e-4, LLt.At(1, 0), 1e-12)
}

func (s *LikelihoodTestSuite) TestNoiseAvoidsJitterEscalation() {
	K := mat.NewDense(2, 2, []float64{1, 1 + 5e-4, 1 + 5e-4, 1})

	f, err := s.evaluator.Factorize(K, 0.01)
	s.Require().NoError(err)
	s.Equal(1, f.Attempts)
	s.Equal(DefaultJitterParams().Initial, f.Jitter)
}

func (s *LikelihoodTestSuite) TestCustomJitterBudget() {
	e, err := NewEvaluator(WithMaxJitter(5e-4))
	s.Require().NoError(err)

	K := mat.NewDense(2, 2, []float64{1, 1 + 5e-4, 1 + 5e-4, 1})
	_, err = e.Factorize(K, 0)
	s.True(errors.Is(err, ErrNotPositiveDefinite))
	s.Contains(err.Error(), "attempts=5")
}

func (s *LikelihoodTestSuite) TestInvalidJitterParams() {
	for _, opt := range []EvaluatorOption{
		WithJitterGrowth(1),
		WithInitialJitter(0),
		WithMaxJitter(1e-9),
		WithJitterParams(JitterParams{Initial: -1, Growth: 10, Max: 1}),
	} {
		e, err := NewEvaluator(opt)
		s.Nil(e)
		s.True(errors.Is(err, ErrInvalidJitter), "unexpected error: %v", err)
	}
}

func (s *LikelihoodTestSuite) TestUnvalidatedScheduleRejected() {
	indefinite := mat.NewDense(2, 2, []float64{1, 2, 2, 1})
	spd := mat.NewDense(2, 2, []float64{2, 0, 0, 2})
	y := mat.NewVecDense(2, []float64{1, 1})

	tests := []struct {
		name      string
		evaluator *Evaluator
	}{
		{name: "zero value", evaluator: &Evaluator{}},
		{name: "growth of one", evaluator: &Evaluator{jitter: JitterParams{Initial: 1e-8, Growth: 1, Max: 1}}},
		{name: "zero initial jitter", evaluator: &Evaluator{jitter: JitterParams{Initial: 0, Growth: 10, Max: 1}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			for _, K := range []*mat.Dense{indefinite, spd} {
				f, err := tt.evaluator.Factorize(K, 0)
				s.Nil(f)
				s.True(errors.Is(err, ErrInvalidJitter), "unexpected error: %v", err)
			}

			_, err := tt.evaluator.LogMarginalLikelihood(spd, y, 0)
			s.True(errors.Is(err, ErrInvalidJitter), "unexpected error: %v", err)
		})
	}
}

func (s *LikelihoodTestSuite) TestJitterParamsGetter() {
	s.Equal(DefaultJitterParams(), s.evaluator.JitterParams())

	e, err := NewEvaluator(WithInitialJitter(1e-6), WithJitterGrowth(100))
	s.Require().NoError(err)
	s.Equal(JitterParams{Initial: 1e-6, Growth: 100, Max: 1}, e.JitterParams())
}

func (s *LikelihoodTestSuite) TestLoggingIsOptIn() {
	K := mat.NewDense(2, 2, []float64{1, 2, 2, 1})

	s.Equal(zerolog.Disabled, s.evaluator.log.GetLevel())
	s.Equal(zerolog.Disabled, defaultEvaluator.log.GetLevel())

	var buf bytes.Buffer
	e, err := NewEvaluator(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	s.Require().NoError(err)

	_, err = e.Factorize(K, 0)
	s.True(errors.Is(err, ErrNotPositiveDefinite))
	s.Equal(8, strings.Count(buf.String(), "cholesky factorization failed, increasing jitter"))
}

func (s *LikelihoodTestSuite) TestPreconditions() {
	_, err := s.evaluator.LogMarginalLikelihood(mat.NewDense(2, 3, nil), mat.NewVecDense(2, nil), 0)
	s.True(errors.Is(err, ErrNotSquare), "unexpected error: %v", err)

	_, err = s.evaluator.LogMarginalLikelihood(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), mat.NewVecDense(3, nil), 0)
	s.True(errors.Is(err, ErrTargetLength), "unexpected error: %v", err)

	_, err = s.evaluator.Factorize(mat.NewDense(3, 1, nil), 0)
	s.True(errors.Is(err, ErrNotSquare), "unexpected error: %v", err)
}

func (s *LikelihoodTestSuite) TestInputsNotMutated() {
	K := mat.NewDense(2, 2, []float64{2, 0.5, 0.5, 1})
	y := mat.NewVecDense(2, []float64{0.3, -0.2})
	KCopy, yCopy := mat.DenseCopyOf(K), mat.VecDenseCopyOf(y)

	_, err := s.evaluator.LogMarginalLikelihood(K, y, 0.1)
	s.Require().NoError(err)
	s.True(mat.Equal(KCopy, K))
	s.True(mat.Equal(yCopy, y))
}

func (s *LikelihoodTestSuite) TestLogDetIsSumOfLogDiagonal() {
	K := mat.NewDense(2, 2, []float64{4, 1, 1, 3})
	y := mat.NewVecDense(2, []float64{1, 2})

	res, err := s.evaluator.Evaluate(K, y, 0)
	s.Require().NoError(err)

	var chol mat.Cholesky
	sym := mat.NewSymDense(2, []float64{4 + res.Jitter, 1, 1, 3 + res.Jitter})
	s.Require().True(chol.Factorize(sym))
	s.InDelta(chol.LogDet()/2, res.LogDetK, 1e-12)
	s.InDelta(-0.5*res.DataFit-res.LogDetK-math.Log(2*math.Pi), res.LogLik, 1e-12)
}

func (s *LikelihoodTestSuite) TestEmpty() {
	got, err := s.evaluator.LogMarginalLikelihood(&mat.Dense{}, &mat.VecDense{}, 0)
	s.Require().NoError(err)
	s.Zero(got)
}

func BenchmarkLogMarginalLikelihood(b *testing.B) {
	n := 100
	data := make([]float64, n)
	y := make([]float64, n)
	for i := range data {
		data[i] = float64(i) * 0.05
		y[i] = math.Sin(data[i])
	}
	K, err := kernels.SquaredExponential(mat.NewDense(n, 1, data), mat.NewDense(n, 1, data), 1, 0.3)
	if err != nil {
		b.Fatal(err)
	}
	target := mat.NewVecDense(n, y)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LogMarginalLikelihood(K, target, 0.01)
	}
}
