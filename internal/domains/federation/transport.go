package federation

import (
	"context"

	"fedblog-backend/internal/domains/follower"
)

// DeliveryReport aggregates the outcome of a fan-out. Failed counts
// recipients whose dispatch could not even be initiated; deliveries that were
// handed off but later fail are the transport's retry problem, not ours.
type DeliveryReport struct {
	Recipients int `json:"recipients"`
	Dispatched int `json:"dispatched"`
	Failed     int `json:"failed"`
}

// Transport hands activities off for per-recipient delivery. Implementations
// own signing, HTTP delivery, retry and backoff. Failure of one recipient
// must never prevent dispatch to the others.
type Transport interface {
	SendActivity(ctx context.Context, senderHandle string, recipients []*follower.Follower, activity *Activity) (*DeliveryReport, error)
}
