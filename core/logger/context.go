package logger

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
)

// contextKey is a private type to avoid collisions in context.
type contextKey string

const (
	ctxRID    contextKey = "rid"
	ctxConv   contextKey = "conversation_id"
	ctxLogger contextKey = "logger"
)

// WithLogger stores a slog.Logger in context for propagation across layers.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxLogger, log)
}

// FromContext extracts the logger from context or falls back to the base one.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if v := ctx.Value(ctxLogger); v != nil {
		if log, ok := v.(*slog.Logger); ok {
			return log
		}
	}
	return L
}

// WithRID attaches a request correlation id to context.
func WithRID(ctx context.Context, rid string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRID, rid)
}

// RIDFrom extracts the correlation id from context if present.
func RIDFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(ctxRID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithConversation attaches the conversation identity to context.
func WithConversation(ctx context.Context, conversationID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxConv, conversationID)
}

// ConversationFrom extracts the conversation identity from context.
func ConversationFrom(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v := ctx.Value(ctxConv); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

// BuildRID derives a short stable correlation id from update metadata.
func BuildRID(updateID int, chatID, userID int64) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%d:%d", updateID, chatID, userID)
	return fmt.Sprintf("%08x", h.Sum32())
}
