package observability

import (
	"context"
	"errors"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-twitter-backend/internal/config"
)

func TestSetupOTel_DisabledIsNoop(t *testing.T) {
	shutdown, err := SetupOTel(context.Background(), config.OTELConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	if shutdown == nil {
		t.Fatalf("shutdown must be callable even when disabled")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

func TestSetupOTel_ExporterErrorPropagates(t *testing.T) {
	prev := newOTLPExporterFn
	t.Cleanup(func() { newOTLPExporterFn = prev })

	wantErr := errors.New("exporter down")
	newOTLPExporterFn = func(ctx context.Context, client otlptrace.Client) (*otlptrace.Exporter, error) {
		return nil, wantErr
	}

	_, err := SetupOTel(context.Background(), config.OTELConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Insecure:    true,
		ServiceName: "test",
		SampleRatio: 1.0,
	}, "test")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected exporter error, got %v", err)
	}
}

func TestTraceDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:oteltest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := TraceDB(db, config.OTELConfig{Enabled: false}); err != nil {
		t.Fatalf("disabled TraceDB must be a no-op: %v", err)
	}
	if err := TraceDB(db, config.OTELConfig{Enabled: true}); err != nil {
		t.Fatalf("installing the tracing plugin: %v", err)
	}
}
