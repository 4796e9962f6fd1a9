package metrics

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestSetupDisabledReturnsNoHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled: false,
	})
	if err != nil {
		t.Fatalf("expected no error when disabled, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler != nil {
		t.Fatalf("expected nil handler when disabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
}

func TestSetupEnabledInitializesRecorderAndHandler(t *testing.T) {
	rec, handler, shutdown, err := Setup(context.Background(), TelemetryConfig{
		Enabled:     true,
		ServiceName: "pwhl-schedule-service",
		// No OTLP endpoint; uses Prometheus exporter only.
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec == nil {
		t.Fatalf("expected recorder")
	}
	if handler == nil {
		t.Fatalf("expected handler when enabled")
	}
	if shutdown == nil {
		t.Fatalf("expected shutdown function")
	}
	defer shutdown(context.Background())

	// Exercise otel-backed recorders to ensure no panic.
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordPollerCycle(time.Millisecond, nil)
	rec.RecordPollerCycle(time.Millisecond, errors.New("sweep failed"))
	rec.RecordProviderAttempt("leaguestat", time.Millisecond, nil)
	rec.RecordCacheHit(5)
	rec.RecordCacheMiss(5)
	rec.RecordStaleServe(5)
}

func TestSetupPropagatesPrometheusFailure(t *testing.T) {
	orig := promReaderFactory
	defer func() { promReaderFactory = orig }()
	promReaderFactory = func() (sdkmetric.Reader, http.Handler, error) {
		return nil, nil, errors.New("exporter init failed")
	}

	if _, _, _, err := Setup(context.Background(), TelemetryConfig{Enabled: true}); err == nil {
		t.Fatalf("expected setup to fail when the exporter cannot be built")
	}
}

func TestSetupPropagatesOTLPFailure(t *testing.T) {
	orig := otlpReaderFactory
	defer func() { otlpReaderFactory = orig }()
	otlpReaderFactory = func(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
		return nil, errors.New("otlp init failed")
	}

	_, _, _, err := Setup(context.Background(), TelemetryConfig{
		Enabled:      true,
		OtlpEndpoint: "collector:4318",
	})
	if err == nil {
		t.Fatalf("expected setup to fail when the otlp reader cannot be built")
	}
}
