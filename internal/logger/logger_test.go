package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_Envs(t *testing.T) {
	for _, env := range []string{"prod", "local", "dev", "docker"} {
		if _, err := NewLogger(env); err != nil {
			t.Errorf("NewLogger(%q): %v", env, err)
		}
	}
	if _, err := NewLogger("staging"); err == nil {
		t.Error("expected error for unknown env")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestNewCLILogger(t *testing.T) {
	quiet, err := NewCLILogger(false)
	if err != nil {
		t.Fatalf("NewCLILogger: %v", err)
	}
	if quiet.Core().Enabled(zapcore.InfoLevel) {
		t.Error("cli logger should be quiet by default")
	}
	verbose, _ := NewCLILogger(true)
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Error("verbose cli logger should log debug")
	}
}

func TestContextRoundTrip(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core))

	FromContext(ctx).Info("hello")
	if logs.Len() != 1 {
		t.Errorf("expected 1 log entry, got %d", logs.Len())
	}

	// missing logger falls back to a no-op
	FromContext(context.Background()).Info("dropped")
}

func TestWith_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ctx := ContextWithLogger(context.Background(), zap.New(core).With(zap.String("request_id", "r1")))

	ctx = With(ctx, zap.String("session_id", "s1"))
	FromContext(ctx).Info("cart updated")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "r1" || fields["session_id"] != "s1" {
		t.Errorf("unexpected fields: %v", fields)
	}
}

func TestWith_NoLoggerInContext(t *testing.T) {
	ctx := context.Background()
	if got := With(ctx, zap.String("session_id", "s1")); got != ctx {
		t.Error("expected ctx unchanged without a logger")
	}
}
