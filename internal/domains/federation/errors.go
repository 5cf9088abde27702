package federation

import "errors"

var (
	// ErrUnsupportedActivity - the inbox received an activity type it does not handle
	ErrUnsupportedActivity = errors.New("unsupported activity type")

	// ErrMissingInbox - a remote actor document carries no usable inbox
	ErrMissingInbox = errors.New("remote actor has no inbox")
)
