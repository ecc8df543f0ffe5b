// Package kernels evaluates Gaussian Process covariance functions over pairs of point sets.
package kernels

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrDimensionMismatch is returned when the two point sets do not share a column dimension.
var ErrDimensionMismatch = errors.New("point sets have different dimensions")

// Covariance is a kernel evaluator with its hyperparameters bound.
type Covariance interface {
	// Matrix returns the n1 x n2 matrix with entry (i, j) = k(x1_i, x2_j).
	Matrix(x1, x2 mat.Matrix) (*mat.Dense, error)
	Name() string
}

var (
	_ Covariance = Bandwidth{}
	_ Covariance = LinearKernel{}
	_ Covariance = SE{}
	_ Covariance = PeriodicKernel{}
)

// Bandwidth is the generic Gaussian kernel exp(-||u-v||^2 / B).
type Bandwidth struct {
	B float64
}

// LinearKernel is SigmaF^2 * (u . v).
type LinearKernel struct {
	SigmaF float64
}

// SE is the squared-exponential kernel.
type SE struct {
	SigmaF      float64 // magnitude
	LengthScale float64
}

// PeriodicKernel is the exp-sine-squared kernel.
type PeriodicKernel struct {
	SigmaF      float64 // magnitude
	LengthScale float64
	Period      float64
}

func (k Bandwidth) Name() string      { return "bandwidth" }
func (k LinearKernel) Name() string   { return "linear" }
func (k SE) Name() string             { return "squared-exponential" }
func (k PeriodicKernel) Name() string { return "periodic" }

func (k Bandwidth) Matrix(x1, x2 mat.Matrix) (*mat.Dense, error) {
	return Kernel(x1, x2, k.B)
}

func (k LinearKernel) Matrix(x1, x2 mat.Matrix) (*mat.Dense, error) {
	return Linear(x1, x2, k.SigmaF)
}

func (k SE) Matrix(x1, x2 mat.Matrix) (*mat.Dense, error) {
	return SquaredExponential(x1, x2, k.SigmaF, k.LengthScale)
}

func (k PeriodicKernel) Matrix(x1, x2 mat.Matrix) (*mat.Dense, error) {
	return Periodic(x1, x2, k.SigmaF, k.LengthScale, k.Period)
}

// Gram evaluates c over a single point set against itself, the symmetric case a
// marginal likelihood needs.
func Gram(c Covariance, x mat.Matrix) (*mat.Dense, error) {
	return c.Matrix(x, x)
}
