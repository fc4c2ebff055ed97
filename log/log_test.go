package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h)
}

func TestLoggerModule(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("setop")

	child.Info("proof verified")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "setop" {
		t.Fatalf("module = %v, want %q", entry["module"], "setop")
	}
	if entry["msg"] != "proof verified" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "proof verified")
	}
}

func TestLoggerModuleChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("query").With("dag_nodes", 7)

	child.Info("planned")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "query" {
		t.Fatalf("module = %v, want %q", entry["module"], "query")
	}
	if entry["dag_nodes"] != float64(7) {
		t.Fatalf("dag_nodes = %v, want 7", entry["dag_nodes"])
	}
}
