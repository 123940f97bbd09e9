// Package telegram adapts the forms engine to telebot-based bots: a prompt
// transport over *tele.Bot, a text route that feeds active conversations into
// the engine, and keyboard helpers for field prompt payloads.
package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v4"
)

// Transport sends form prompts through a telebot bot.
type Transport struct {
	bot *tele.Bot
}

// NewTransport wraps an initialized bot. The bot stays owned by the caller.
func NewTransport(bot *tele.Bot) *Transport {
	return &Transport{bot: bot}
}

// SendPrompt delivers text to the conversation chat. The payload, when set,
// must be a *tele.ReplyMarkup (see the keyboard helpers); nil sends plain text.
func (t *Transport) SendPrompt(_ context.Context, conversationID int64, text string, payload any) error {
	recipient := tele.ChatID(conversationID)
	if payload == nil {
		_, err := t.bot.Send(recipient, text)
		return err
	}
	markup, ok := payload.(*tele.ReplyMarkup)
	if !ok {
		return fmt.Errorf("telegram: unsupported prompt payload %T", payload)
	}
	_, err := t.bot.Send(recipient, text, markup)
	return err
}
