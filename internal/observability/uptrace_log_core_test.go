package observability

import (
	"context"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	if !shouldSkipUptraceLog("http_request", map[string]any{"http_path": "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if shouldSkipUptraceLog("http_request", map[string]any{"http_path": "/v1/tournaments"}) {
		t.Fatalf("did not expect non-health log to be skipped")
	}
	if shouldSkipUptraceLog("tournament finalized", map[string]any{"http_path": "/healthz"}) {
		t.Fatalf("did not expect non-http_request event to be skipped")
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes(map[string]any{
		"tournament_id": int64(42),
		"stage":         "knockout",
		"payload":       nil,
		"trace_id":      "0102",
	})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "payload" || attrs[0].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "stage" || attrs[1].Value.AsString() != "knockout" {
		t.Fatalf("unexpected stage attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "tournament_id" || attrs[2].Value.AsInt64() != 42 {
		t.Fatalf("unexpected tournament_id attribute: %+v", attrs[2])
	}
}

func TestToOTelLogValue_Map(t *testing.T) {
	v := toOTelLogValue(map[string]any{
		"legs": 3,
		"win":  true,
	}, 0)
	if v.Kind() != otellog.KindMap {
		t.Fatalf("expected map value, got %s", v.Kind())
	}
	if items := v.AsMap(); len(items) != 2 {
		t.Fatalf("expected 2 map items, got %d", len(items))
	}
}

func TestSpanContextFromFields(t *testing.T) {
	want := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1, 2, 3},
		SpanID:  trace.SpanID{4, 5, 6},
	})
	ctx := spanContextFromFields(context.Background(), map[string]any{
		"trace_id": want.TraceID().String(),
		"span_id":  want.SpanID().String(),
	})
	got := trace.SpanContextFromContext(ctx)
	if got.TraceID() != want.TraceID() || got.SpanID() != want.SpanID() {
		t.Fatalf("unexpected span context: %+v", got)
	}

	if trace.SpanContextFromContext(spanContextFromFields(context.Background(), map[string]any{"trace_id": "zz"})).IsValid() {
		t.Fatalf("expected invalid ids to be ignored")
	}
}

func TestUptraceLogCore_LevelAndWith(t *testing.T) {
	core := newUptraceLogCore(zapcore.WarnLevel, "test")
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info to be disabled")
	}
	if !core.Enabled(zapcore.ErrorLevel) {
		t.Fatalf("expected error to be enabled")
	}

	child := core.With([]zapcore.Field{{Key: "component", Type: zapcore.StringType, String: "import"}})
	if len(child.(*uptraceLogCore).fields) != 1 || len(core.(*uptraceLogCore).fields) != 0 {
		t.Fatalf("expected With to copy fields without mutating parent")
	}
	if err := child.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "import failed"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
