package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/polkiloo/routemanager/internal/config"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New(&config.Config{LogLevel: slog.LevelInfo})
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}
}

func TestLoggerHonoursLevelAndTagsService(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(&buf, slog.LevelDebug)
	l.Debug("order advanced", slog.Int64("order_id", 7))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["service"] != "routemanager" {
		t.Fatalf("expected service attribute, got %v", entry)
	}
	if entry["msg"] != "order advanced" {
		t.Fatalf("unexpected message %v", entry["msg"])
	}
}
