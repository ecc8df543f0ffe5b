package main

import (
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/gpkern/internal/config"
	"github.com/tensorplex-labs/gpkern/internal/utils/logger"
	"github.com/tensorplex-labs/gpkern/pkg/kernels"
	"github.com/tensorplex-labs/gpkern/pkg/likelihood"
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	demo := config.NewDemoConfig(cfg.Environment)

	kernels.SetLogger(log.Logger)
	evaluator, err := likelihood.NewEvaluator(
		likelihood.WithJitterParams(cfg.JitterParams()),
		likelihood.WithLogger(log.Logger),
	)
	if err != nil {
		log.Fatal().Stack().Err(err).Msg("failed to create evaluator")
	}

	x, y := samplePeriodicSignal(demo.Points, cfg.Period)

	covariances := []kernels.Covariance{
		kernels.Bandwidth{B: cfg.Bandwidth},
		kernels.LinearKernel{SigmaF: cfg.SigmaF},
		kernels.SE{SigmaF: cfg.SigmaF, LengthScale: cfg.LengthScale},
		kernels.PeriodicKernel{SigmaF: cfg.SigmaF, LengthScale: cfg.LengthScale, Period: cfg.Period},
	}
	for _, c := range covariances {
		evaluate(evaluator, c, x, y, cfg.NoiseVariance, demo.PlotRows)
	}

	testIndefinite(evaluator)
}

// samplePeriodicSignal returns n points on [0, 2p) and a noiseless sine of period p.
func samplePeriodicSignal(n int, p float64) (*mat.Dense, *mat.VecDense) {
	x := mat.NewDense(n, 1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := 2 * p * float64(i) / float64(n)
		x.Set(i, 0, t)
		y.SetVec(i, math.Sin(2*math.Pi*t/p))
	}
	return x, y
}

func evaluate(e *likelihood.Evaluator, c kernels.Covariance, x *mat.Dense, y *mat.VecDense, s2 float64, plot bool) {
	log.Info().Msgf("--- Evaluating %s kernel ---", c.Name())
	K, err := kernels.Gram(c, x)
	if err != nil {
		log.Error().Stack().Err(err).Str("kernel", c.Name()).Msg("kernel evaluation failed")
		return
	}
	if plot {
		kernels.PlotRowTerminal(os.Stdout, mat.Row(nil, 0, K), c.Name()+" kernel, row 0")
	}

	res, err := e.Evaluate(K, y, s2)
	if err != nil {
		log.Error().Stack().Err(err).Str("kernel", c.Name()).Msg("log marginal likelihood failed")
		return
	}
	log.Info().
		Str("kernel", c.Name()).
		Float64("logLik", res.LogLik).
		Float64("dataFit", res.DataFit).
		Float64("logDetK", res.LogDetK).
		Float64("jitter", res.Jitter).
		Int("attempts", res.Attempts).
		Msgf("%s kernel log marginal likelihood %f", c.Name(), res.LogLik)
}

func testIndefinite(e *likelihood.Evaluator) {
	log.Info().Msg("--- Evaluating indefinite matrix ---")
	K := mat.NewDense(2, 2, []float64{1, 2, 2, 1})
	y := mat.NewVecDense(2, []float64{1, 1})
	if _, err := e.LogMarginalLikelihood(K, y, 0); err != nil {
		log.Info().Err(err).Msg("indefinite matrix rejected as expected")
		return
	}
	log.Warn().Msg("indefinite matrix was not rejected")
}
