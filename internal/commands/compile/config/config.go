package config

import (
	"fmt"
	"strings"

	"github.com/artuross/tinycompiler/internal/compiler/dump"
	"github.com/rs/zerolog"
)

const EnvLogLevel = "TINYCOMPILER_LOG_LEVEL"

type Flagger interface {
	String(name string) string
	Bool(name string) bool
	Int(name string) int
}

type Config struct {
	Emit     dump.Emit
	Inputs   []string
	Jobs     int
	LogLevel zerolog.Level
	Trace    bool
}

func Read(flags Flagger, args []string, getEnv func(string) string) (*Config, error) {
	emit, err := dump.ParseEmit(flags.String("emit"))
	if err != nil {
		return nil, fmt.Errorf("flag --emit: %w", err)
	}

	jobs := flags.Int("jobs")
	if jobs < 1 {
		return nil, fmt.Errorf("flag --jobs must be at least 1, got %d", jobs)
	}

	// flag wins over env
	rawLevel := flags.String("log-level")
	if rawLevel == "" {
		rawLevel = getEnv(EnvLogLevel)
	}
	if rawLevel == "" {
		rawLevel = zerolog.WarnLevel.String()
	}

	logLevel, err := zerolog.ParseLevel(strings.ToLower(rawLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", rawLevel, err)
	}

	inputs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "" {
			return nil, fmt.Errorf("input path may not be empty")
		}

		inputs = append(inputs, arg)
	}

	cfg := Config{
		Emit:     emit,
		Inputs:   inputs,
		Jobs:     jobs,
		LogLevel: logLevel,
		Trace:    flags.Bool("trace"),
	}

	return &cfg, nil
}

func Print(logger *zerolog.Logger, cfg *Config) {
	inputs := cfg.Inputs
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	logger.Debug().
		Str("emit", string(cfg.Emit)).
		Strs("inputs", inputs).
		Int("jobs", cfg.Jobs).
		Str("log_level", cfg.LogLevel.String()).
		Bool("trace", cfg.Trace).
		Msg("running with config")
}
