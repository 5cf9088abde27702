package blog

import (
	"crypto/rsa"
	"time"
)

// Identity is the single blog identity aggregate. At most one instance ever
// exists in storage; the Unconfigured state is simply its absence.
type Identity struct {
	Handle      string
	Title       string
	Description string
	Icon        string // absolute URL to remote media
	Image       string // absolute URL to remote media

	// Never exposed. Absent only on records written before a password was set.
	PasswordHash string

	// The actor's signing credential, generated once at first setup and
	// carried forward on every later rewrite.
	PrivateKey *rsa.PrivateKey
	PublicKey  *rsa.PublicKey

	Published time.Time
}

// StoredIdentity is the persisted record shape, keyed by a fixed name in the
// KV store. Key material is kept opaque (PEM strings) so the storage layer
// never depends on crypto types.
type StoredIdentity struct {
	Handle       string `json:"handle"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Published    string `json:"published"` // RFC 3339 instant
	Icon         string `json:"icon"`
	Image        string `json:"image"`
	PasswordHash string `json:"passwordHash,omitempty"`
	PrivateKey   string `json:"privateKey"`
	PublicKey    string `json:"publicKey"`
}
