package config_test

import (
	"testing"

	"github.com/artuross/tinycompiler/internal/commands/compile/config"
	"github.com/artuross/tinycompiler/internal/compiler/dump"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFlagger struct {
	strings map[string]string
	bools   map[string]bool
	ints    map[string]int
}

func (f fakeFlagger) String(name string) string { return f.strings[name] }
func (f fakeFlagger) Bool(name string) bool     { return f.bools[name] }
func (f fakeFlagger) Int(name string) int       { return f.ints[name] }

func newFlagger() fakeFlagger {
	return fakeFlagger{
		strings: map[string]string{"emit": "code"},
		bools:   map[string]bool{},
		ints:    map[string]int{"jobs": 4},
	}
}

func noEnv(string) string { return "" }

func TestRead(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Read(newFlagger(), nil, noEnv)
		require.NoError(t, err)

		expected := &config.Config{
			Emit:     dump.EmitCode,
			Inputs:   []string{},
			Jobs:     4,
			LogLevel: zerolog.WarnLevel,
			Trace:    false,
		}

		assert.Equal(t, expected, cfg)
	})

	t.Run("all flags", func(t *testing.T) {
		flags := newFlagger()
		flags.strings["emit"] = "target"
		flags.strings["log-level"] = "DEBUG"
		flags.bools["trace"] = true
		flags.ints["jobs"] = 2

		cfg, err := config.Read(flags, []string{"a.lisp", "b.lisp"}, noEnv)
		require.NoError(t, err)

		expected := &config.Config{
			Emit:     dump.EmitTarget,
			Inputs:   []string{"a.lisp", "b.lisp"},
			Jobs:     2,
			LogLevel: zerolog.DebugLevel,
			Trace:    true,
		}

		assert.Equal(t, expected, cfg)
	})

	t.Run("log level from env", func(t *testing.T) {
		getEnv := func(name string) string {
			if name == config.EnvLogLevel {
				return "info"
			}

			return ""
		}

		cfg, err := config.Read(newFlagger(), nil, getEnv)
		require.NoError(t, err)
		assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel)
	})

	t.Run("flag wins over env", func(t *testing.T) {
		flags := newFlagger()
		flags.strings["log-level"] = "error"

		getEnv := func(string) string { return "info" }

		cfg, err := config.Read(flags, nil, getEnv)
		require.NoError(t, err)
		assert.Equal(t, zerolog.ErrorLevel, cfg.LogLevel)
	})
}

func TestRead_Errors(t *testing.T) {
	t.Run("unknown emit", func(t *testing.T) {
		flags := newFlagger()
		flags.strings["emit"] = "asm"

		_, err := config.Read(flags, nil, noEnv)
		assert.ErrorIs(t, err, dump.ErrUnknownEmit)
	})

	t.Run("jobs", func(t *testing.T) {
		flags := newFlagger()
		flags.ints["jobs"] = 0

		_, err := config.Read(flags, nil, noEnv)
		assert.Error(t, err)
	})

	t.Run("log level", func(t *testing.T) {
		flags := newFlagger()
		flags.strings["log-level"] = "loud"

		_, err := config.Read(flags, nil, noEnv)
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := config.Read(newFlagger(), []string{"a.lisp", ""}, noEnv)
		assert.Error(t, err)
	})
}
