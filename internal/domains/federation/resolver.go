package federation

import "context"

// RemoteActor is the slice of a remote actor document we care about.
type RemoteActor struct {
	ID     string `json:"id"`
	Inbox  string `json:"inbox"`
	Type   string `json:"type"`
	Name   string `json:"name"`
}

// Resolver fetches remote actor documents for inbox discovery.
type Resolver interface {
	ResolveActor(ctx context.Context, actorURI string) (*RemoteActor, error)
}
