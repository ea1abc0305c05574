package observability

import (
	"context"
	"testing"
)

func TestInitTracerDisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), TracingConfig{ServiceName: "fraud-detection"})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected a shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown returned %v", err)
	}
}

func TestInitTracerWithEndpoint(t *testing.T) {
	// The exporter connects lazily, so no collector needs to be running.
	shutdown, err := InitTracer(context.Background(), TracingConfig{
		ServiceName: "fraud-detection",
		Endpoint:    "127.0.0.1:1",
		Insecure:    true,
	})
	if err != nil {
		t.Fatalf("InitTracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
