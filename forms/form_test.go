package forms

import (
	"errors"
	"testing"
)

func TestNewRejectsEmptyForm(t *testing.T) {
	if _, err := New("Empty"); !errors.Is(err, ErrNoFields) {
		t.Fatalf("New with no fields: err = %v, want ErrNoFields", err)
	}
}

func TestNewRejectsEmptyName(t *testing.T) {
	if _, err := New("", NewField("a", "A?")); err == nil {
		t.Fatal("expected error for empty form name")
	}
}

func TestNewRejectsDuplicateKeys(t *testing.T) {
	_, err := New("Dup", NewField("a", "A?"), NewField("a", "again"))
	if err == nil {
		t.Fatal("expected error for duplicate field keys")
	}
}

func TestNewRejectsReusedField(t *testing.T) {
	shared := NewField("a", "A?")
	if _, err := New("First", shared); err != nil {
		t.Fatalf("first form: %v", err)
	}
	if _, err := New("Second", shared); err == nil {
		t.Fatal("expected error when attaching a field to a second form")
	}
}

func TestStatesCompilationIsIdempotent(t *testing.T) {
	form, err := New("Signup",
		NewField("name", "Your name?"),
		NewField("age", "Your age?"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := form.States()
	second := form.States()

	want := []string{"Signup:waiting_name", "Signup:waiting_age"}
	if len(first) != len(want) {
		t.Fatalf("States len = %d, want %d", len(first), len(want))
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("States[%d] = %q, want %q", i, first[i], want[i])
		}
		if second[i] != first[i] {
			t.Fatalf("second compilation disagrees at %d: %q vs %q", i, second[i], first[i])
		}
	}
	if len(second) != len(first) {
		t.Fatalf("second compilation grew the state set: %d vs %d", len(second), len(first))
	}
}

func TestFieldsMatchStatesPositionally(t *testing.T) {
	form, err := New("Order",
		NewField("item", "Which item?"),
		NewField("qty", "How many?"),
		NewField("address", "Where to?"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	states := form.States()
	for i, field := range form.Fields() {
		if field.StateID() != states[i] {
			t.Fatalf("field[%d] state %q does not match states[%d] %q",
				i, field.StateID(), i, states[i])
		}
	}
}

func TestFieldByState(t *testing.T) {
	form, err := New("Order",
		NewField("item", "Which item?"),
		NewField("qty", "How many?"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	index, field := form.fieldByState("Order:waiting_qty")
	if index != 1 || field == nil || field.Key() != "qty" {
		t.Fatalf("fieldByState = (%d, %v), want index 1 key qty", index, field)
	}
	if index, field := form.fieldByState("Other:waiting_qty"); index != -1 || field != nil {
		t.Fatalf("foreign state resolved to (%d, %v), want (-1, nil)", index, field)
	}
}
