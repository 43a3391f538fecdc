package semconv

// Compilation
const (
	// Unique ID of a single compilation. Every input compiled by one command
	// invocation gets its own ID.
	CompilationID = "compilation_id"

	// Name of the input being compiled: a file path, or "-" for stdin.
	Input = "input"
)

// Pipeline
const (
	// Stage of the pipeline: lex, parse, transform or generate.
	Stage = "stage"

	// Number of items a stage produced (tokens, top level nodes, bytes).
	StageOutputSize = "stage_output_size"
)
