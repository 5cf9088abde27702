package follower

import "time"

// Follower is a remote actor subscribed to this blog's activities.
// Deduplicated by ActorURI; the registry holds no other per-follower state.
type Follower struct {
	ActorURI   string    `json:"actorUri"`
	InboxURI   string    `json:"inboxUri"`
	ActivityID string    `json:"activityId"` // the Follow activity that created this record
	FollowedAt time.Time `json:"followedAt"`
}
