package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func newBufferLogger(t *testing.T) (*Logger, *bytes.Buffer) {
	t.Helper()
	log, err := NewLogger(&Config{Level: DebugLevel, Format: "json", AppName: "fleet"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	return log, buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	return entry
}

func TestWithFieldsDoesNotMutateParent(t *testing.T) {
	log, buf := newBufferLogger(t)
	child := log.WithField("bus", "B-1")
	log.Info("parent")

	entry := decodeLine(t, buf)
	if _, ok := entry["bus"]; ok {
		t.Fatalf("parent logger leaked child field: %v", entry)
	}

	buf.Reset()
	child.WithError(errors.New("boom")).Warn("child")
	entry = decodeLine(t, buf)
	if entry["bus"] != "B-1" || entry["error"] != "boom" || entry["app"] != "fleet" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestWithContextPicksRequestID(t *testing.T) {
	log, buf := newBufferLogger(t)
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	log.WithContext(ctx).Info("hello")

	if got := decodeLine(t, buf)["request_id"]; got != "req-42" {
		t.Fatalf("request_id = %v", got)
	}
}

func TestLogAPIRequestLevelFollowsStatus(t *testing.T) {
	log, buf := newBufferLogger(t)
	log.LogAPIRequest("GET", "/api/v1/buses", 404, 0, nil)

	if got := decodeLine(t, buf)["level"]; got != "warning" {
		t.Fatalf("level = %v, want warning", got)
	}
}
