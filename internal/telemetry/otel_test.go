package telemetry

import (
	"context"
	"testing"

	"github.com/blaisecz/meal-cycle/internal/config"
)

func TestInitTracer_NoEndpointIsNoop(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), &config.Config{}, "meal-cycle-test")
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestInitTracer_WithEndpoint(t *testing.T) {
	cfg := &config.Config{OTLPEndpoint: "http://localhost:4318/v1/traces", OTelEnv: "test"}
	shutdown, err := InitTracer(context.Background(), cfg, "meal-cycle-test")
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown func")
	}
}
