// Package config defines environment configuration structs and loaders.
package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/tensorplex-labs/gpkern/pkg/likelihood"
)

type AppConfig struct {
	JitterEnvConfig
	KernelEnvConfig
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
}

// LoadConfig reads an optional .env file and parses the process environment.
func LoadConfig() (*AppConfig, error) {
	_ = godotenv.Load()
	return ParseConfig()
}

// ParseConfig parses the process environment without touching .env files.
func ParseConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return cfg, nil
}

// JitterEnvConfig controls the Cholesky jitter schedule.
type JitterEnvConfig struct {
	InitialJitter float64 `env:"GP_INITIAL_JITTER" envDefault:"1e-8"`
	JitterGrowth  float64 `env:"GP_JITTER_GROWTH" envDefault:"10"`
	MaxJitter     float64 `env:"GP_MAX_JITTER" envDefault:"1"`
}

func (c JitterEnvConfig) JitterParams() likelihood.JitterParams {
	return likelihood.JitterParams{
		Initial: c.InitialJitter,
		Growth:  c.JitterGrowth,
		Max:     c.MaxJitter,
	}
}

// KernelEnvConfig holds hyperparameters for the demo entrypoint.
type KernelEnvConfig struct {
	NoiseVariance float64 `env:"GP_NOISE_VARIANCE" envDefault:"0.01"`
	Bandwidth     float64 `env:"GP_BANDWIDTH" envDefault:"1"`
	SigmaF        float64 `env:"GP_SIGMA_F" envDefault:"1"`
	LengthScale   float64 `env:"GP_LENGTH_SCALE" envDefault:"1"`
	Period        float64 `env:"GP_PERIOD" envDefault:"1"`
}

// DemoConfig sizes the demo run.
type DemoConfig struct {
	Points   int
	PlotRows bool
}

var (
	DevDemoConfig  = &DemoConfig{Points: 8, PlotRows: true}
	TestDemoConfig = &DemoConfig{Points: 8, PlotRows: false}
	ProdDemoConfig = &DemoConfig{Points: 32, PlotRows: false}
)

func NewDemoConfig(environment string) *DemoConfig {
	switch strings.ToLower(environment) {
	case "dev":
		return DevDemoConfig
	case "test":
		return TestDemoConfig
	case "prod":
		return ProdDemoConfig
	}

	return DevDemoConfig
}
