package exthost

import "errors"

var (
	// ErrInvalidArgument marks requests carrying a bad or missing resource,
	// argument, or provider.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotRegistered marks operations against an unknown view id.
	ErrNotRegistered = errors.New("no tree view registered")
)
