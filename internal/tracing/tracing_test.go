package tracing

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	tracer, shutdown, err := InitTracing(ctx, "finance-calculator-test", "", zap.NewNop())
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	if tracer == nil {
		t.Fatal("expected tracer")
	}

	_, span := tracer.Start(ctx, "test-span")
	if !span.SpanContext().IsValid() {
		t.Error("expected recording span with valid context")
	}
	span.End()

	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
