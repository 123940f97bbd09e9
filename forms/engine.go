package forms

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Transport delivers prompts to a conversation. Delivery failures propagate
// back to the host and its retry policy; the engine does not retry.
type Transport interface {
	SendPrompt(ctx context.Context, conversationID int64, text string, payload any) error
}

// Store keeps per-conversation machine state and collected answers. Every
// operation must be atomic with respect to a single conversation. An empty
// state string means the conversation is not inside any form.
type Store interface {
	State(ctx context.Context, conversationID int64) (string, error)
	SetState(ctx context.Context, conversationID int64, state string) error
	Data(ctx context.Context, conversationID int64) (map[string]string, error)
	UpdateData(ctx context.Context, conversationID int64, key, value string) error
}

// Translator localizes labels and error messages before they reach the
// transport. A nil translator is the identity.
type Translator interface {
	Translate(text string) string
}

// Callback receives the collected answers once the last field of a form is
// accepted for the given conversation.
type Callback func(ctx context.Context, conversationID int64, data map[string]string) error

// Engine drives forms over an injected store and transport. A single engine
// serves any number of forms and conversations; conversations are independent
// and may progress concurrently.
type Engine struct {
	store      Store
	transport  Transport
	translator Translator
	log        *slog.Logger

	mu        sync.RWMutex
	routes    map[string]*Form   // state id -> owning form
	bound     map[string]*Form   // form name -> registration guard
	callbacks map[int64]Callback // conversation id -> completion callback
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithTranslator installs a translator applied to labels and error messages.
func WithTranslator(t Translator) EngineOption {
	return func(e *Engine) { e.translator = t }
}

// WithLogger replaces the default logger.
func WithLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// NewEngine builds an engine over the given store and transport.
func NewEngine(store Store, transport Transport, opts ...EngineOption) *Engine {
	e := &Engine{
		store:     store,
		transport: transport,
		routes:    make(map[string]*Form),
		bound:     make(map[string]*Form),
		callbacks: make(map[int64]Callback),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	return e
}

// Bind registers a form's states into the engine routing table. Binding is a
// one-time wiring step and is idempotent: repeated calls for the same form
// are no-ops. Binding a different definition under an already bound name is
// an error, since state identifiers are namespaced by form name.
func (e *Engine) Bind(form *Form) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bindLocked(form)
}

func (e *Engine) bindLocked(form *Form) error {
	if existing, ok := e.bound[form.Name()]; ok {
		if existing != form {
			return fmt.Errorf("forms: form name %q already bound to a different definition", form.Name())
		}
		return nil
	}
	for _, st := range form.States() {
		e.routes[st] = form
	}
	e.bound[form.Name()] = form
	e.log.Debug("form bound",
		slog.String("event", "form.bind"),
		slog.String("form", form.Name()),
		slog.Int("fields", len(form.Fields())),
	)
	return nil
}

// Start begins the form for a conversation: it binds the form if needed,
// records the completion callback, moves the conversation into the first
// field's state and sends exactly one prompt. A callback recorded by an
// earlier unfinished Start for the same conversation is replaced.
func (e *Engine) Start(ctx context.Context, conversationID int64, form *Form, cb Callback) error {
	if form == nil {
		return fmt.Errorf("forms: nil form")
	}
	e.mu.Lock()
	if err := e.bindLocked(form); err != nil {
		e.mu.Unlock()
		return err
	}
	if cb != nil {
		e.callbacks[conversationID] = cb
	} else {
		delete(e.callbacks, conversationID)
	}
	e.mu.Unlock()

	e.log.Debug("form started",
		slog.String("event", "form.start"),
		slog.String("form", form.Name()),
		slog.Int64("conversation_id", conversationID),
	)
	return e.promote(ctx, conversationID, form.Fields()[0])
}

// HandleInput routes an inbound value to the conversation's current field.
// A conversation outside any bound state is left untouched and reported as
// nil: the host may own that message. Validation failures keep the state and
// re-emit only the field's error text.
func (e *Engine) HandleInput(ctx context.Context, conversationID int64, value string) error {
	state, err := e.store.State(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("forms: read state: %w", err)
	}
	if state == "" {
		return nil
	}
	e.mu.RLock()
	form := e.routes[state]
	e.mu.RUnlock()
	if form == nil {
		e.log.Debug("state not bound, input ignored",
			slog.String("event", "form.unresolved"),
			slog.Int64("conversation_id", conversationID),
			slog.String("state", state),
		)
		return nil
	}
	index, field := form.fieldByState(state)
	if field == nil {
		return nil
	}

	if !field.Validate(ctx, value) {
		e.log.Debug("value rejected",
			slog.String("event", "form.reject"),
			slog.String("form", form.Name()),
			slog.String("field", field.Key()),
			slog.Int64("conversation_id", conversationID),
		)
		return e.send(ctx, conversationID, field.ValidationError(), nil)
	}

	if err := e.store.UpdateData(ctx, conversationID, field.DataKey(), value); err != nil {
		return fmt.Errorf("forms: store answer: %w", err)
	}

	fields := form.Fields()
	if next := index + 1; next < len(fields) {
		return e.promote(ctx, conversationID, fields[next])
	}
	return e.finish(ctx, conversationID, form)
}

// Data returns a snapshot with exactly one entry per form field, mapped to
// the stored answer or the empty string when the field has not been answered
// yet. The snapshot comes from a single store read.
func (e *Engine) Data(ctx context.Context, conversationID int64, form *Form) (map[string]string, error) {
	raw, err := e.store.Data(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("forms: read data: %w", err)
	}
	out := make(map[string]string, len(form.Fields()))
	for _, fld := range form.Fields() {
		out[fld.DataKey()] = raw[fld.DataKey()]
	}
	return out, nil
}

// InProgress reports whether the conversation currently sits in a state owned
// by one of the engine's bound forms.
func (e *Engine) InProgress(ctx context.Context, conversationID int64) bool {
	state, err := e.store.State(ctx, conversationID)
	if err != nil || state == "" {
		return false
	}
	e.mu.RLock()
	_, ok := e.routes[state]
	e.mu.RUnlock()
	return ok
}

// promote moves the conversation into the given field's state and prompts it.
func (e *Engine) promote(ctx context.Context, conversationID int64, field *Field) error {
	if err := e.store.SetState(ctx, conversationID, field.StateID()); err != nil {
		return fmt.Errorf("forms: set state: %w", err)
	}
	return e.send(ctx, conversationID, field.Label(), field.Prompt())
}

// finish clears the state pointer and hands the collected answers to the
// completion callback. Stored answers survive the reset on purpose: the
// callback and later reads still see them until the host clears the store.
func (e *Engine) finish(ctx context.Context, conversationID int64, form *Form) error {
	if err := e.store.SetState(ctx, conversationID, ""); err != nil {
		return fmt.Errorf("forms: reset state: %w", err)
	}
	e.mu.Lock()
	cb := e.callbacks[conversationID]
	delete(e.callbacks, conversationID)
	e.mu.Unlock()

	e.log.Info("form finished",
		slog.String("event", "form.finish"),
		slog.String("form", form.Name()),
		slog.Int64("conversation_id", conversationID),
		slog.Int("fields", len(form.Fields())),
	)
	if cb == nil {
		return nil
	}
	data, err := e.Data(ctx, conversationID, form)
	if err != nil {
		return err
	}
	return cb(ctx, conversationID, data)
}

func (e *Engine) send(ctx context.Context, conversationID int64, text string, payload any) error {
	if e.translator != nil {
		text = e.translator.Translate(text)
	}
	if err := e.transport.SendPrompt(ctx, conversationID, text, payload); err != nil {
		return fmt.Errorf("forms: send prompt: %w", err)
	}
	return nil
}
