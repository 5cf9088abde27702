package blog

import "errors"

var (
	// ErrNoIdentity - the blog has not been set up yet
	ErrNoIdentity = errors.New("blog identity not configured")

	// ErrCorruptState - the stored identity exists but cannot be read back.
	// Not recoverable locally; surfaces as a 500 and should alert an operator.
	ErrCorruptState = errors.New("stored blog identity is corrupt")

	// ErrEmptyPassword - a credential cannot be derived from an empty password
	ErrEmptyPassword = errors.New("password must not be empty")
)
