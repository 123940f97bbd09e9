package forms

import "context"

// DefaultValidationError is sent when a field rejects a value and no custom
// message is configured.
const DefaultValidationError = "Invalid value, please try again"

// Field is a single step of a form: a prompt label, the validators applied to
// the user's answer, and an optional platform-specific prompt payload.
// A field belongs to exactly one form; the form assigns its state identifier
// and data key during compilation.
type Field struct {
	key        string
	label      string
	errMessage string
	prompt     any
	validators []Validator

	// assigned by the owning form
	form    string
	stateID string
}

// FieldOption customizes a field at construction time.
type FieldOption func(*Field)

// WithValidators appends validators, applied in the given order.
func WithValidators(v ...Validator) FieldOption {
	return func(f *Field) {
		f.validators = append(f.validators, v...)
	}
}

// WithErrorMessage replaces the default validation error text.
func WithErrorMessage(msg string) FieldOption {
	return func(f *Field) {
		f.errMessage = msg
	}
}

// WithPrompt attaches an opaque platform payload sent along with the label,
// e.g. a *tele.ReplyMarkup for Telegram reply keyboards.
func WithPrompt(payload any) FieldOption {
	return func(f *Field) {
		f.prompt = payload
	}
}

// NewField builds a form field. The key identifies the stored answer and the
// machine state within the owning form; the label is the prompt text shown to
// the user.
func NewField(key, label string, opts ...FieldOption) *Field {
	f := &Field{key: key, label: label}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Key returns the field identifier within its form.
func (f *Field) Key() string { return f.key }

// Label returns the prompt text.
func (f *Field) Label() string { return f.label }

// Prompt returns the opaque prompt payload, nil when none was configured.
func (f *Field) Prompt() any { return f.prompt }

// StateLabel returns the per-form state name for this field.
func (f *Field) StateLabel() string { return "waiting_" + f.key }

// StateID returns the dispatcher-wide state identifier. Empty until the field
// is compiled as part of a form.
func (f *Field) StateID() string { return f.stateID }

// DataKey returns the namespaced key the answer is stored under. Empty until
// the field is attached to a form.
func (f *Field) DataKey() string {
	if f.form == "" {
		return ""
	}
	return f.form + ":" + f.key
}

// ValidationError returns the message sent to the user when validation fails.
func (f *Field) ValidationError() string {
	if f.errMessage != "" {
		return f.errMessage
	}
	return DefaultValidationError
}

// Validate runs the field's validators in order and reports whether all of
// them accepted the value. It stops at the first rejection: validators may
// carry ordering-dependent side effects, so later ones must not run.
func (f *Field) Validate(ctx context.Context, value string) bool {
	for _, v := range f.validators {
		if !v.Validate(ctx, value) {
			return false
		}
	}
	return true
}
