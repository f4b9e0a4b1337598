package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "geiger"

// Tracer returns the process tracer. Spans are no-ops unless the host
// installs a TracerProvider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
