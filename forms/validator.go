package forms

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// Validator checks a single raw input value. Implementations must not panic
// on well-formed string input; there is no separate error channel, so an
// internal failure is reported as false.
type Validator interface {
	Validate(ctx context.Context, value string) bool
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, value string) bool

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, value string) bool {
	return f(ctx, value)
}

// NonEmpty rejects empty and whitespace-only values.
func NonEmpty() Validator {
	return ValidatorFunc(func(_ context.Context, value string) bool {
		return strings.TrimSpace(value) != ""
	})
}

// MinLength accepts values with at least n runes.
func MinLength(n int) Validator {
	return ValidatorFunc(func(_ context.Context, value string) bool {
		return len([]rune(value)) >= n
	})
}

// MaxLength accepts values with at most n runes.
func MaxLength(n int) Validator {
	return ValidatorFunc(func(_ context.Context, value string) bool {
		return len([]rune(value)) <= n
	})
}

// Numeric accepts values that parse as a base-10 integer.
func Numeric() Validator {
	return ValidatorFunc(func(_ context.Context, value string) bool {
		_, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		return err == nil
	})
}

// Regexp accepts values matched by the given pattern.
func Regexp(re *regexp.Regexp) Validator {
	return ValidatorFunc(func(_ context.Context, value string) bool {
		return re != nil && re.MatchString(value)
	})
}

// OneOf accepts values equal to one of the given choices.
func OneOf(choices ...string) Validator {
	set := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		set[c] = struct{}{}
	}
	return ValidatorFunc(func(_ context.Context, value string) bool {
		_, ok := set[value]
		return ok
	})
}
