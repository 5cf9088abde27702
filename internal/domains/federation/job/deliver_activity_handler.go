package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"fedblog-backend/internal/domains/blog"
	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/federation/transport"
	"fedblog-backend/internal/shared"
	"fedblog-backend/internal/shared/utils"
	"fedblog-backend/pkg/kv"
	"fedblog-backend/pkg/logger"
)

// failureCountsKey tracks consecutive delivery failures per recipient actor.
const failureCountsKey = "federation:failures"

type DeliverActivityHandler struct {
	blogs     blog.Service
	deliverer *transport.Deliverer
	addresser *federation.Addresser
	store     kv.Store
}

func NewDeliverActivityHandler(blogs blog.Service, deliverer *transport.Deliverer, addresser *federation.Addresser, store kv.Store) *DeliverActivityHandler {
	return &DeliverActivityHandler{
		blogs:     blogs,
		deliverer: deliverer,
		addresser: addresser,
		store:     store,
	}
}

func (h *DeliverActivityHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.DeliverActivityPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return err
	}

	// The signing key is read per task: a delivery retried hours later still
	// signs with the current (never rotated) key.
	identity, err := h.blogs.Get(ctx)
	if err != nil {
		return fmt.Errorf("load identity: %w", err)
	}

	keyID := h.addresser.KeyID(identity.Handle)
	if err := h.deliverer.Deliver(ctx, payload.InboxURI, keyID, identity.PrivateKey, payload.ActivityJSON); err != nil {
		if n, incErr := h.store.HashIncrement(ctx, failureCountsKey, payload.ActorURI); incErr == nil {
			logger.Warn("delivery failed", map[string]interface{}{
				"inbox":                payload.InboxURI,
				"consecutive_failures": n,
			})
		}
		// Returned to asynq for retry with backoff.
		return err
	}

	// A success resets the unreachable counter.
	if err := h.store.HashDelete(ctx, failureCountsKey, payload.ActorURI); err != nil {
		logger.Error("reset failure counter", err)
	}

	logger.Info("activity delivered", map[string]interface{}{
		"inbox": payload.InboxURI,
	})
	return nil
}
