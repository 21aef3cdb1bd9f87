package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fantasy-core/internal/usecase")

// startUsecaseSpan opens a child span when the caller already carries an
// active trace. Untraced calls get a no-op span so deferred Ends stay
// unconditional.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return usecaseTracer.Start(ctx, name)
}
