package audit

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"automan.solutions/console/internal/obs"
	"automan.solutions/console/internal/session"
)

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	prev := obs.Logger()
	obs.SetLogger(zap.New(core))
	t.Cleanup(func() { obs.SetLogger(prev) })
	return logs
}

func TestLogEvent(t *testing.T) {
	logs := captureLogs(t)

	ctx := session.ContextWithSession(context.Background(), session.Session{
		Token:    "t1",
		Identity: session.Identity{FullName: "Root"},
	})
	if err := LogEvent(ctx, "tenant.deleted", map[string]any{"tenant_id": int64(7)}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event"] != "tenant.deleted" {
		t.Fatalf("unexpected event: %v", fields["event"])
	}
	if fields["admin"] != "Root" {
		t.Fatalf("unexpected admin: %v", fields["admin"])
	}
	nested, ok := fields["fields"].(map[string]any)
	if !ok || nested["tenant_id"] != int64(7) {
		t.Fatalf("fields missing or incorrect: %v", fields["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	logs := captureLogs(t)

	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatalf("expected error for blank event")
	}
	if len(logs.All()) != 0 {
		t.Fatalf("blank event must not log")
	}
}

func TestLogEventWithoutSession(t *testing.T) {
	logs := captureLogs(t)

	if err := LogEvent(context.Background(), "auth.login.failed", map[string]any{"email": "admin@x.com"}); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}
	fields := logs.All()[0].ContextMap()
	if _, present := fields["admin"]; present {
		t.Fatalf("no admin expected without session")
	}
}
