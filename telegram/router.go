package telegram

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/FMajesty/teleforms/core/logger"
)

// Engine is the subset of the forms engine the text route needs.
type Engine interface {
	InProgress(ctx context.Context, conversationID int64) bool
	HandleInput(ctx context.Context, conversationID int64, value string) error
}

// RouteOptions control fallback behaviour for text updates outside a form.
type RouteOptions struct {
	// Fallback handles text messages from conversations with no active form,
	// e.g. the bot's command handling. Nil means the message is dropped.
	Fallback tele.HandlerFunc
}

// TextRoute builds the OnText handler: active form conversations go to the
// engine, everything else falls through to the host handler.
func TextRoute(engine Engine, opts RouteOptions) tele.HandlerFunc {
	return func(c tele.Context) error {
		convID := ConversationID(c)
		ctx := buildContext(c, convID)

		if engine.InProgress(ctx, convID) {
			return engine.HandleInput(ctx, convID, c.Text())
		}
		if opts.Fallback != nil {
			return opts.Fallback(c)
		}
		logger.TG.Debug("text outside form ignored",
			slog.String("event", "route.skip"),
			slog.Int64("conversation_id", convID),
			slog.String("rid", logger.RIDFrom(ctx)),
		)
		return nil
	}
}

// Attach registers the text route on the bot, wrapped in panic recovery.
func Attach(bot *tele.Bot, engine Engine, opts RouteOptions) {
	bot.Handle(tele.OnText, Recover(TextRoute(engine, opts)))
}

// ConversationID derives the conversation identity from an update: the chat
// when present, otherwise the sender.
func ConversationID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}

// buildContext constructs a context.Context carrying the correlation id and
// conversation identity for downstream logging.
func buildContext(c tele.Context, convID int64) context.Context {
	var userID int64
	if sender := c.Sender(); sender != nil {
		userID = sender.ID
	}
	rid := logger.BuildRID(c.Update().ID, convID, userID)
	ctx := logger.WithRID(context.Background(), rid)
	return logger.WithConversation(ctx, convID)
}
