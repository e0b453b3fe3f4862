package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/spore-warriors-resources/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("SPORE_WARRIORS_OTEL_ENDPOINT", "")
	t.Setenv("SPORE_WARRIORS_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("SPORE_WARRIORS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SPORE_WARRIORS_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsInvalidToggle(t *testing.T) {
	t.Setenv("SPORE_WARRIORS_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("SPORE_WARRIORS_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected parse error for invalid toggle")
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	t.Setenv("SPORE_WARRIORS_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("SPORE_WARRIORS_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, span := otel.Tracer().Start(context.Background(), "probe")
	span.End()
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
