package compile

import (
	"errors"
	"fmt"
	"os"

	"github.com/artuross/tinycompiler/internal/commandinit"
	"github.com/artuross/tinycompiler/internal/commands/compile/config"
	"github.com/artuross/tinycompiler/internal/commands/compile/exec"
	"github.com/artuross/tinycompiler/internal/compiler"
	"github.com/artuross/tinycompiler/internal/compiler/dump"
	"github.com/artuross/tinycompiler/internal/defaults"
	"github.com/artuross/tinycompiler/internal/meta/version"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/trace"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "Compiles prefix call expressions into C-like calls.",
		ArgsUsage: "[file...]",
		Description: "Without file arguments a single line is read from stdin. " +
			"Each file is compiled as a whole; outputs are printed in argument order.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "emit",
				Usage: "Output to print: code, tokens, ast or target.",
				Value: string(dump.EmitCode),
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "Maximum number of files compiled at the same time.",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level written to stderr. Falls back to " + config.EnvLogLevel + ".",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "Export traces with the OTLP gRPC exporter, configured through OTEL_* env vars.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := config.Read(cliCtx, cliCtx.Args().Slice(), os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	consoleWriter := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = cliCtx.App.ErrWriter
	})

	logger := zerolog.New(consoleWriter).Level(cfg.LogLevel).With().Timestamp().Str("command", "compile").Logger()

	config.Print(&logger, cfg)

	var tracerProvider trace.TracerProvider = defaults.TracerProvider

	if cfg.Trace {
		tp, tpShutdown, err := commandinit.NewOpenTelemetry(ctx, "tinycompiler", version.Version)
		if err != nil {
			logger.Error().Err(err).Msg("init OTEL provider")
			return ErrCommandFailed
		}
		defer tpShutdown(ctx)

		tracerProvider = tp
	}

	ctx = logger.WithContext(ctx)

	execConfig := exec.Config{
		Emit:   cfg.Emit,
		Inputs: cfg.Inputs,
		Jobs:   cfg.Jobs,
	}

	executor := exec.NewExecutor(
		compiler.New(compiler.WithTracerProvider(tracerProvider)),
		exec.WithStdin(cliCtx.App.Reader),
		exec.WithStdout(cliCtx.App.Writer),
		exec.WithTracerProvider(tracerProvider),
	)

	if err := executor.Run(ctx, execConfig); err != nil {
		logger.Error().Err(err).Msg("run command")
		return ErrCommandFailed
	}

	return nil
}
