// Package options implements a small generic functional-options engine
// shared by every constructor in this module that takes a variadic
// configuration list (decode.NewDecoder).
package options

// Option configures a target of type T, returning an error if the supplied
// configuration is invalid for that target.
type Option[T any] interface {
	Apply(T) error
}

// optionFunc adapts a plain function to the Option interface.
type optionFunc[T any] struct {
	fn func(T) error
}

// Apply implements Option.
func (o *optionFunc[T]) Apply(target T) error {
	return o.fn(target)
}

// Validating builds an Option from a function that can reject its input.
func Validating[T any](fn func(T) error) Option[T] {
	return &optionFunc[T]{fn: fn}
}

// Always builds an Option from a function that cannot fail.
func Always[T any](fn func(T)) Option[T] {
	return &optionFunc[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// ApplyAll applies every option to target in order, stopping at the first
// error.
func ApplyAll[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.Apply(target); err != nil {
			return err
		}
	}
	return nil
}
