package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/logger"
)

type inboxService struct {
	blogs     blog.Service
	followers follower.Repository
	transport federation.Transport
	resolver  federation.Resolver
	addresser *federation.Addresser
}

// NewInboxService creates the inbox processor.
func NewInboxService(
	blogs blog.Service,
	followers follower.Repository,
	transport federation.Transport,
	resolver federation.Resolver,
	addresser *federation.Addresser,
) federation.Inbox {
	return &inboxService{
		blogs:     blogs,
		followers: followers,
		transport: transport,
		resolver:  resolver,
		addresser: addresser,
	}
}

func (s *inboxService) Receive(ctx context.Context, activity *federation.InboundActivity) error {
	switch activity.Type {
	case federation.TypeFollow:
		return s.handleFollow(ctx, activity)
	case federation.TypeUndo:
		return s.handleUndo(ctx, activity)
	default:
		return fmt.Errorf("%w: %s", federation.ErrUnsupportedActivity, activity.Type)
	}
}

// handleFollow registers the sender and answers with an Accept so the remote
// server marks the subscription active.
func (s *inboxService) handleFollow(ctx context.Context, activity *federation.InboundActivity) error {
	identity, err := s.blogs.Get(ctx)
	if err != nil {
		return err
	}

	remote, err := s.resolver.ResolveActor(ctx, activity.Actor)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", activity.Actor, err)
	}
	if remote.Inbox == "" {
		return federation.ErrMissingInbox
	}

	record := &follower.Follower{
		ActorURI:   activity.Actor,
		InboxURI:   remote.Inbox,
		ActivityID: activity.ID,
		FollowedAt: time.Now().UTC(),
	}
	if err := s.followers.Add(ctx, record); err != nil {
		return err
	}

	actorURI := s.addresser.ActorURI(identity.Handle)
	accept := &federation.Activity{
		Context: []string{federation.ContextActivityStreams},
		ID:      fmt.Sprintf("%s#accepts/%s", actorURI, uuid.NewString()),
		Type:    federation.TypeAccept,
		Actor:   actorURI,
		Object:  activity,
	}

	if _, err := s.transport.SendActivity(ctx, identity.Handle, []*follower.Follower{record}, accept); err != nil {
		return fmt.Errorf("send accept: %w", err)
	}

	logger.Info("follower added", map[string]interface{}{
		"actor": activity.Actor,
	})
	return nil
}

// handleUndo removes the follower named by the wrapped Follow.
func (s *inboxService) handleUndo(ctx context.Context, activity *federation.InboundActivity) error {
	inner, err := activity.ObjectActivity()
	if err != nil {
		return err
	}
	if inner.Type != federation.TypeFollow {
		return fmt.Errorf("%w: undo of %s", federation.ErrUnsupportedActivity, inner.Type)
	}

	if err := s.followers.Remove(ctx, activity.Actor); err != nil {
		return err
	}

	logger.Info("follower removed", map[string]interface{}{
		"actor": activity.Actor,
	})
	return nil
}
