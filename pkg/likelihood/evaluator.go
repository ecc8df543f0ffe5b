package likelihood

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/gpkern/internal/utils/logger"
)

// JitterParams bound the diagonal regularization tried before giving up on a factorization.
// Jitter starts at Initial and is multiplied by Growth after every failed attempt while
// it stays strictly below Max.
type JitterParams struct {
	Initial float64
	Growth  float64
	Max     float64
}

func (p JitterParams) validate() error {
	if !(p.Initial > 0) || !(p.Growth > 1) || !(p.Max > p.Initial) {
		return errors.Wrapf(ErrInvalidJitter, "initial=%g growth=%g max=%g", p.Initial, p.Growth, p.Max)
	}
	return nil
}

// Evaluator computes log marginal likelihoods with a fixed jitter schedule.
// It holds no mutable state and is safe for concurrent use. The zero value has no
// jitter schedule and fails every call with ErrInvalidJitter; use NewEvaluator.
type Evaluator struct {
	jitter JitterParams
	log    zerolog.Logger
}

type EvaluatorOption func(*Evaluator)

func WithInitialJitter(initial float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.jitter.Initial = initial
	}
}

func WithJitterGrowth(growth float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.jitter.Growth = growth
	}
}

func WithMaxJitter(maxJitter float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.jitter.Max = maxJitter
	}
}

func WithJitterParams(params JitterParams) EvaluatorOption {
	return func(e *Evaluator) {
		e.jitter = params
	}
}

// WithLogger routes factorization and likelihood logs to l. Without it nothing is logged.
func WithLogger(l zerolog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		e.log = l
	}
}

// NewEvaluator returns an Evaluator using DefaultJitterParams unless overridden.
func NewEvaluator(opts ...EvaluatorOption) (*Evaluator, error) {
	e := &Evaluator{
		jitter: DefaultJitterParams(),
		log:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if err := e.jitter.validate(); err != nil {
		return nil, err
	}

	logger.Sugar().Debugw("Marginal likelihood evaluator configured", "jitter", e.jitter)
	return e, nil
}

// JitterParams returns the jitter schedule of e.
func (e *Evaluator) JitterParams() JitterParams {
	return e.jitter
}

var defaultEvaluator = &Evaluator{jitter: DefaultJitterParams(), log: zerolog.Nop()}

// LogMarginalLikelihood evaluates log p(y | K, s2) with the default jitter schedule.
func LogMarginalLikelihood(K mat.Matrix, y mat.Vector, s2 float64) (float64, error) {
	return defaultEvaluator.LogMarginalLikelihood(K, y, s2)
}
