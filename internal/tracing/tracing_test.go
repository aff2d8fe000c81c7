package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestInit_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Init(context.Background(), "bhasbi-api", "test", "")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	carrier := propagation.MapCarrier{"traceparent": "00-0af7651916cd43dd8448eb211c80319c-b7ad6b7169203331-01"}
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), carrier)
	out := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, out)
	require.Equal(t, carrier["traceparent"], out["traceparent"])
}

func TestInit_WithEndpoint(t *testing.T) {
	// grpc.NewClient connects lazily, so no collector is needed here.
	shutdown, err := Init(context.Background(), "bhasbi-api", "test", "127.0.0.1:4317")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	_ = shutdown(context.Background())
}
