package defaults

import (
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	TracerProvider = noop.NewTracerProvider()
)
