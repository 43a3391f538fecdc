package exec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/artuross/tinycompiler/internal/compiler"
	"github.com/artuross/tinycompiler/internal/compiler/dump"
	"github.com/artuross/tinycompiler/internal/defaults"
	"github.com/artuross/tinycompiler/internal/log/semconv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/artuross/tinycompiler/internal/commands/compile/exec"

	// StdinInput names the input read from stdin in logs and errors.
	StdinInput = "-"
)

type Compiler interface {
	Compile(ctx context.Context, input string) (*compiler.Result, error)
}

type Config struct {
	Emit   dump.Emit
	Inputs []string
	Jobs   int
}

type Executor struct {
	compiler Compiler
	stdin    io.Reader
	stdout   io.Writer
	readFile func(name string) ([]byte, error)
	tracer   trace.Tracer
}

func NewExecutor(compiler Compiler, options ...func(*Executor)) *Executor {
	executor := Executor{
		compiler: compiler,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		readFile: os.ReadFile,
		tracer:   defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&executor)
	}

	return &executor
}

// Run compiles a single line from stdin when no inputs are configured,
// otherwise every input file as a whole. Outputs are written only after all
// compilations succeed, in input order.
func (e *Executor) Run(ctx context.Context, config Config) error {
	ctx, span := e.tracer.Start(ctx, "run")
	defer span.End()

	if len(config.Inputs) == 0 {
		return e.runStdin(ctx, config)
	}

	return e.runFiles(ctx, config)
}

func (e *Executor) runStdin(ctx context.Context, config Config) error {
	line, err := readLine(e.stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	result, err := e.compile(ctx, StdinInput, line)
	if err != nil {
		return err
	}

	return dump.Write(e.stdout, config.Emit, result)
}

func (e *Executor) runFiles(ctx context.Context, config Config) error {
	results := make([]*compiler.Result, len(config.Inputs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(config.Jobs, 1))

	for index, path := range config.Inputs {
		index, path := index, path

		group.Go(func() error {
			data, err := e.readFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			result, err := e.compile(ctx, path, string(data))
			if err != nil {
				return err
			}

			results[index] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, result := range results {
		if err := dump.Write(e.stdout, config.Emit, result); err != nil {
			return err
		}
	}

	return nil
}

func (e *Executor) compile(ctx context.Context, name string, source string) (*compiler.Result, error) {
	compilationID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate compilation ID: %w", err)
	}

	ctx, span := e.tracer.Start(ctx, "compile input")
	defer span.End()

	span.SetAttributes(
		attribute.String(semconv.CompilationID, compilationID.String()),
		attribute.String(semconv.Input, name),
	)

	logger := zerolog.Ctx(ctx).With().
		Str(semconv.CompilationID, compilationID.String()).
		Str(semconv.Input, name).
		Logger()

	ctx = logger.WithContext(ctx)

	logger.Info().Msg("compiling")

	result, err := e.compiler.Compile(ctx, source)
	if err != nil {
		logger.Error().Err(err).Msg("compilation failed")

		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	return result, nil
}

// readLine returns the first line without its line terminator. A last line
// without a terminator is returned as is.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func WithStdin(r io.Reader) func(*Executor) {
	return func(e *Executor) {
		e.stdin = r
	}
}

func WithStdout(w io.Writer) func(*Executor) {
	return func(e *Executor) {
		e.stdout = w
	}
}

func WithReadFile(readFile func(name string) ([]byte, error)) func(*Executor) {
	return func(e *Executor) {
		e.readFile = readFile
	}
}

func WithTracerProvider(tp trace.TracerProvider) func(*Executor) {
	return func(e *Executor) {
		e.tracer = tp.Tracer(tracerName)
	}
}
