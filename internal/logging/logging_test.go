// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestErrKeyConstant(t *testing.T) {
	if ErrKey != "error" {
		t.Errorf("expected ErrKey to be 'error', got %q", ErrKey)
	}
}

func TestAppendCtx(t *testing.T) {
	attr := slog.String("notetaker_id", "nt-123")
	ctx := AppendCtx(context.TODO(), attr)

	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attribute, got %d", len(attrs))
	}
	if attrs[0].Key != "notetaker_id" {
		t.Errorf("expected key 'notetaker_id', got %q", attrs[0].Key)
	}
	if attrs[0].Value.String() != "nt-123" {
		t.Errorf("expected value 'nt-123', got %q", attrs[0].Value.String())
	}
}

func TestAppendCtx_Accumulates(t *testing.T) {
	ctx := context.Background()
	ctx = AppendCtx(ctx, slog.String("event_type", "notetaker.media"))
	ctx = AppendCtx(ctx, slog.Int("attempt", 2))
	ctx = AppendCtx(ctx, slog.Bool("processed", true))

	attrs, ok := ctx.Value(slogFields).([]slog.Attr)
	if !ok {
		t.Fatal("expected slog attributes in context")
	}
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}

	expectedKeys := []string{"event_type", "attempt", "processed"}
	for i, expectedKey := range expectedKeys {
		if attrs[i].Key != expectedKey {
			t.Errorf("expected key[%d] %q, got %q", i, expectedKey, attrs[i].Key)
		}
	}
}

func TestContextHandler_Handle(t *testing.T) {
	var captured *slog.Record
	inner := &testSlogHandler{
		handleFunc: func(ctx context.Context, r slog.Record) error {
			captured = &r
			return nil
		},
	}
	h := contextHandler{inner}

	ctx := AppendCtx(context.Background(), slog.String("session_id", "s-1"))
	r := slog.Record{}
	if err := h.Handle(ctx, r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == nil {
		t.Fatal("expected record to be handled")
	}

	found := false
	captured.Attrs(func(a slog.Attr) bool {
		if a.Key == "session_id" && a.Value.String() == "s-1" {
			found = true
			return false
		}
		return true
	})
	if !found {
		t.Error("expected session_id attribute from context on record")
	}
}

type testSlogHandler struct {
	handleFunc func(ctx context.Context, r slog.Record) error
}

func (h *testSlogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testSlogHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.handleFunc(ctx, r)
}

func (h *testSlogHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *testSlogHandler) WithGroup(string) slog.Handler { return h }
