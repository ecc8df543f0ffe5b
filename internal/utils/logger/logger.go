// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var (
	Logger *zap.Logger
	mu     sync.RWMutex
)

// LevelForEnvironment maps an ENVIRONMENT value onto the default log level.
func LevelForEnvironment(environment string) zerolog.Level {
	switch strings.ToLower(environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

func initLogger() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, using process environment")
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	debug := flag.Bool("debug", false, "sets log level to debug")
	trace := flag.Bool("trace", false, "sets log level to trace")
	info := flag.Bool("info", false, "sets log level to info (default)")
	flag.Parse()

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	logLevel := LevelForEnvironment(environment)
	switch environment {
	case "dev", "test":
		log.Info().Str("environment", environment).Msg("Development/Test environment detected - enabling all log levels")
	case "prod":
		log.Info().Str("environment", environment).Msg("Production environment detected - enabling info level and above")
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
	}

	if *debug {
		logLevel = zerolog.DebugLevel
		log.Info().Msg("Debug flag detected - overriding environment log level")
	} else if *trace {
		logLevel = zerolog.TraceLevel
		log.Info().Msg("Trace flag detected - overriding environment log level")
	} else if *info {
		logLevel = zerolog.InfoLevel
		log.Info().Msg("Info flag detected - overriding environment log level")
	}

	zerolog.SetGlobalLevel(logLevel)

	var (
		zl  *zap.Logger
		err error
	)
	if logLevel <= zerolog.DebugLevel {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to build zap logger, falling back to no-op")
		zl = zap.NewNop()
	}
	mu.Lock()
	Logger = zl
	mu.Unlock()

	log.Debug().Str("environment", environment).Str("level", logLevel.String()).Msg("Logging configured")
}

// Init initializes the logger with the configuration from the environment
// and command line flags.
// It sets up the global logger to use zerolog with console output.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run ./cmd/gpdemo --debug`
func Init() {
	initLogger()
}

// Sugar returns a sugared logger for easier use. Before Init it returns a no-op logger.
func Sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if Logger == nil {
		return zap.NewNop().Sugar()
	}
	return Logger.Sugar()
}
