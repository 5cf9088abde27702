package federation

import (
	"context"

	"fedblog-backend/internal/domains/blog"
)

// Synchronizer propagates a profile change to every known follower.
type Synchronizer interface {
	// PublishProfileUpdate builds exactly one Update(Person) activity from
	// the identity and dispatches it to the full follower set. Per-recipient
	// failures are isolated and aggregated in the report; the call returns
	// once dispatch has been initiated for all recipients.
	// blog.ErrNoIdentity when identity is nil.
	PublishProfileUpdate(ctx context.Context, identity *blog.Identity) (*DeliveryReport, error)
}

// Inbox processes activities delivered by remote servers.
type Inbox interface {
	// Receive handles one incoming activity: Follow registers the sender as
	// a follower and answers with an Accept; Undo(Follow) removes it.
	// ErrUnsupportedActivity for anything else.
	Receive(ctx context.Context, activity *InboundActivity) error
}
