// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/weclaim/weclaim-api/internal/config"
)

func TestNewTelemetryDisabled(t *testing.T) {
	tel, err := NewTelemetry(context.Background(),
		config.OtelConfig{Enabled: false},
		config.AppConfig{Name: "WeClaim API"},
	)
	require.NoError(t, err)
	require.NotNil(t, tel.Tracer)
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "DELETE /users/{id}")
	AddSpanEvent(ctx, "customer.deleted",
		AttrCustomerID.Int64(5),
		AttrNomineesRemoved.Int64(3),
	)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	var event sdktrace.Event
	for _, e := range ended[0].Events() {
		if e.Name == "customer.deleted" {
			event = e
		}
	}
	require.Equal(t, "customer.deleted", event.Name)
	assert.Contains(t, event.Attributes, AttrCustomerID.Int64(5))
	assert.Contains(t, event.Attributes, AttrNomineesRemoved.Int64(3))
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.NotEmpty(t, TraceIDFromContext(ctx))
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		AddSpanEvent(ctx, "insurance.deleted", AttrInsuranceID.Int64(1))
	})
	assert.Empty(t, TraceIDFromContext(ctx))
}
