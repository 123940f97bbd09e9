package forms

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoFields reports a form constructed without any fields. This is a
// programmer error and surfaces at definition time, never per message.
var ErrNoFields = errors.New("forms: form requires at least one field")

// Form is an ordered, immutable definition of input fields. Field order is
// presentation order. The form compiles into one machine state per field;
// compilation runs once and is reused on every subsequent access.
type Form struct {
	name   string
	fields []*Field

	compileOnce sync.Once
	states      []string
}

// New builds a form definition from fields in presentation order. Each field
// may belong to only one form; keys must be unique within the form.
func New(name string, fields ...*Field) (*Form, error) {
	if name == "" {
		return nil, errors.New("forms: form name is required")
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}
	seen := make(map[string]struct{}, len(fields))
	for _, fld := range fields {
		if fld == nil || fld.key == "" {
			return nil, fmt.Errorf("forms: %s: field with empty key", name)
		}
		if fld.form != "" {
			return nil, fmt.Errorf("forms: %s: field %q already belongs to form %q", name, fld.key, fld.form)
		}
		if _, dup := seen[fld.key]; dup {
			return nil, fmt.Errorf("forms: %s: duplicate field key %q", name, fld.key)
		}
		seen[fld.key] = struct{}{}
	}
	for _, fld := range fields {
		fld.form = name
	}
	return &Form{name: name, fields: fields}, nil
}

// Name returns the form name used to namespace states and stored answers.
func (f *Form) Name() string { return f.name }

// Fields returns the compiled fields in presentation order.
func (f *Form) Fields() []*Field {
	f.compile()
	return f.fields
}

// States returns one state identifier per field, in field order. The state
// set is computed once; repeated calls observe the same assignment.
func (f *Form) States() []string {
	f.compile()
	return f.states
}

func (f *Form) compile() {
	f.compileOnce.Do(func() {
		f.states = make([]string, len(f.fields))
		for i, fld := range f.fields {
			fld.stateID = f.name + ":" + fld.StateLabel()
			f.states[i] = fld.stateID
		}
	})
}

// fieldByState resolves the field owning the given state identifier, or
// (-1, nil) when the state does not belong to this form.
func (f *Form) fieldByState(state string) (int, *Field) {
	for i, fld := range f.Fields() {
		if fld.stateID == state {
			return i, fld
		}
	}
	return -1, nil
}
