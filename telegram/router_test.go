package telegram

import (
	"context"
	"testing"

	tele "gopkg.in/telebot.v4"
)

// fakeTeleCtx implements the handful of tele.Context methods the route uses.
type fakeTeleCtx struct {
	tele.Context
	chat   *tele.Chat
	sender *tele.User
	text   string
}

func (f *fakeTeleCtx) Chat() *tele.Chat    { return f.chat }
func (f *fakeTeleCtx) Sender() *tele.User  { return f.sender }
func (f *fakeTeleCtx) Text() string        { return f.text }
func (f *fakeTeleCtx) Update() tele.Update { return tele.Update{ID: 1} }

type fakeEngine struct {
	inProgress bool
	handled    []string
	handledID  int64
}

func (e *fakeEngine) InProgress(context.Context, int64) bool { return e.inProgress }

func (e *fakeEngine) HandleInput(_ context.Context, conversationID int64, value string) error {
	e.handledID = conversationID
	e.handled = append(e.handled, value)
	return nil
}

func TestTextRouteFeedsActiveConversation(t *testing.T) {
	engine := &fakeEngine{inProgress: true}
	route := TextRoute(engine, RouteOptions{})

	c := &fakeTeleCtx{
		chat:   &tele.Chat{ID: 55},
		sender: &tele.User{ID: 10},
		text:   "Alice",
	}
	if err := route(c); err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(engine.handled) != 1 || engine.handled[0] != "Alice" {
		t.Fatalf("handled = %v, want [Alice]", engine.handled)
	}
	if engine.handledID != 55 {
		t.Fatalf("conversation id = %d, want chat id 55", engine.handledID)
	}
}

func TestTextRouteFallsBackOutsideForm(t *testing.T) {
	engine := &fakeEngine{inProgress: false}
	fallbackCalled := false
	route := TextRoute(engine, RouteOptions{
		Fallback: func(tele.Context) error {
			fallbackCalled = true
			return nil
		},
	})

	c := &fakeTeleCtx{chat: &tele.Chat{ID: 55}, sender: &tele.User{ID: 10}, text: "/help"}
	if err := route(c); err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(engine.handled) != 0 {
		t.Fatalf("engine received %v outside a form", engine.handled)
	}
	if !fallbackCalled {
		t.Fatal("fallback not invoked")
	}
}

func TestTextRouteDropsWithoutFallback(t *testing.T) {
	engine := &fakeEngine{inProgress: false}
	route := TextRoute(engine, RouteOptions{})

	c := &fakeTeleCtx{chat: &tele.Chat{ID: 55}, sender: &tele.User{ID: 10}, text: "noise"}
	if err := route(c); err != nil {
		t.Fatalf("route: %v", err)
	}
}

func TestConversationIDPrefersChat(t *testing.T) {
	c := &fakeTeleCtx{chat: &tele.Chat{ID: 55}, sender: &tele.User{ID: 10}}
	if got := ConversationID(c); got != 55 {
		t.Fatalf("ConversationID = %d, want chat id", got)
	}
	noChat := &fakeTeleCtx{sender: &tele.User{ID: 10}}
	if got := ConversationID(noChat); got != 10 {
		t.Fatalf("ConversationID without chat = %d, want sender id", got)
	}
}
