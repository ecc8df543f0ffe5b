package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelForEnvironment(t *testing.T) {
	cases := map[string]zerolog.Level{
		"dev":     zerolog.TraceLevel,
		"TEST":    zerolog.TraceLevel,
		"prod":    zerolog.InfoLevel,
		"staging": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for env, want := range cases {
		assert.Equal(t, want, LevelForEnvironment(env), "environment %q", env)
	}
}

func TestSugarBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Sugar().Debugw("not initialised", "ok", true)
	})
}
