package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("cricket-club/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span; requests without an active trace get a no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func clubAttr(clubID string) attribute.KeyValue { return attribute.String("club.id", clubID) }

func matchAttr(matchID string) attribute.KeyValue { return attribute.String("match.id", matchID) }

func playerAttr(playerID string) attribute.KeyValue { return attribute.String("player.id", playerID) }

// endSpan records unexpected failures on span. Caller mistakes such as bad input or
// missing access are left as ordinary span events.
func endSpan(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	if isClientError(err) {
		span.AddEvent("rejected", trace.WithAttributes(attribute.String("reason", err.Error())))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
