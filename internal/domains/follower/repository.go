package follower

import "context"

// Repository maintains the follower set. List is the read path the profile
// synchronizer depends on: a finite, restartable enumeration with no ordering
// guarantees, possibly empty.
type Repository interface {
	// Add registers a follower; re-adding the same actor overwrites.
	Add(ctx context.Context, f *Follower) error

	// Remove drops a follower by actor URI. Unknown actors are not an error.
	Remove(ctx context.Context, actorURI string) error

	// Get returns a follower by actor URI, if registered.
	Get(ctx context.Context, actorURI string) (*Follower, bool, error)

	// List returns the full follower set.
	List(ctx context.Context) ([]*Follower, error)

	// Count returns the number of followers.
	Count(ctx context.Context) (int64, error)
}
