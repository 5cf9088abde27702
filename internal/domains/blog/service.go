package blog

import "context"

// Service is the blog identity business logic layer.
type Service interface {
	// Setup validates the request and writes the full identity record,
	// overwriting any prior one. The key pair is generated on the first call
	// only and carried forward on every later call; the password hash is
	// carried forward unless NewPassword supplies a replacement.
	// Validation problems come back as validation.Errors keyed by field name.
	Setup(ctx context.Context, req SetupRequest) (*Identity, error)

	// Get returns the current identity, with key material deserialized into
	// usable keys. ErrNoIdentity when the blog has not been set up,
	// ErrCorruptState when the stored record cannot be read back.
	Get(ctx context.Context) (*Identity, error)

	// VerifyCurrentPassword checks a password against the current identity.
	// Absent identity or any mismatch yields false.
	VerifyCurrentPassword(ctx context.Context, password string) bool
}
