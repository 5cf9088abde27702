package service

import (
	"context"
	"fmt"
	"time"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/logger"
)

type synchronizer struct {
	followers follower.Repository
	transport federation.Transport
	addresser *federation.Addresser
}

// NewSynchronizer creates the profile synchronizer. Profile changes are rare
// and single-actor, so there is no internal queue or batching here: build one
// message, enumerate one audience, hand off to the transport.
func NewSynchronizer(followers follower.Repository, transport federation.Transport, addresser *federation.Addresser) federation.Synchronizer {
	return &synchronizer{
		followers: followers,
		transport: transport,
		addresser: addresser,
	}
}

func (s *synchronizer) PublishProfileUpdate(ctx context.Context, identity *blog.Identity) (*federation.DeliveryReport, error) {
	// Guarded even though callers publish right after a successful write.
	if identity == nil {
		return nil, blog.ErrNoIdentity
	}

	activity, err := s.buildUpdate(identity)
	if err != nil {
		return nil, err
	}

	recipients, err := s.followers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}

	report, err := s.transport.SendActivity(ctx, identity.Handle, recipients, activity)
	if err != nil {
		return nil, err
	}

	logger.Info("profile update dispatched", map[string]interface{}{
		"handle":     identity.Handle,
		"recipients": report.Recipients,
		"dispatched": report.Dispatched,
		"failed":     report.Failed,
	})
	return report, nil
}

// buildUpdate wraps the current Person description in an Update activity,
// addressed publicly in addition to the per-follower deliveries.
func (s *synchronizer) buildUpdate(identity *blog.Identity) (*federation.Activity, error) {
	person, err := federation.BuildPerson(identity, s.addresser)
	if err != nil {
		return nil, err
	}

	actorURI := s.addresser.ActorURI(identity.Handle)
	return &federation.Activity{
		Context: []string{federation.ContextActivityStreams, federation.ContextSecurity},
		ID:      fmt.Sprintf("%s#updates/%d", actorURI, time.Now().Unix()),
		Type:    federation.TypeUpdate,
		Actor:   actorURI,
		To:      []string{federation.PublicAudience},
		Object:  person,
	}, nil
}
