package logger

import (
	"context"
	"testing"
)

func TestComponentTagsLogger(t *testing.T) {
	if Component("test") == nil {
		t.Fatal("Component returned nil before Init")
	}
	if Forms == nil || Store == nil || TG == nil {
		t.Fatal("component loggers not wired")
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "WARN", "warning", "error"} {
		if _, err := parseLevel(level); err != nil {
			t.Fatalf("parseLevel(%q): %v", level, err)
		}
	}
	if _, err := parseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestBuildHandlerRejectsUnknownFormat(t *testing.T) {
	if _, err := buildHandler(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := WithRID(context.Background(), "rid-1")
	ctx = WithConversation(ctx, 42)

	if got := RIDFrom(ctx); got != "rid-1" {
		t.Fatalf("RIDFrom = %q", got)
	}
	if got := ConversationFrom(ctx); got != 42 {
		t.Fatalf("ConversationFrom = %d", got)
	}
	if got := RIDFrom(context.Background()); got != "" {
		t.Fatalf("RIDFrom on empty context = %q", got)
	}
	if FromContext(ctx) == nil {
		t.Fatal("FromContext returned nil")
	}
}

func TestBuildRIDIsStable(t *testing.T) {
	a := BuildRID(1, 2, 3)
	b := BuildRID(1, 2, 3)
	c := BuildRID(1, 2, 4)
	if a != b {
		t.Fatalf("same inputs produced %q and %q", a, b)
	}
	if a == c {
		t.Fatal("different inputs produced identical rid")
	}
}
