// Package errs provides small helpers for chaining sentinel errors.
package errs

import "fmt"

// Wrap chains ext onto base so that errors.Is matches both.
func Wrap(base, ext error) error {
	return fmt.Errorf("%w: %w", base, ext)
}

// Wrapf annotates base with a plain string detail.
func Wrapf(base error, str string) error {
	return fmt.Errorf("%w: %s", base, str)
}
