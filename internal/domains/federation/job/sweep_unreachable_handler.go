package job

import (
	"context"
	"strconv"

	"github.com/hibiken/asynq"

	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/pkg/kv"
	"fedblog-backend/pkg/logger"
)

// SweepUnreachableHandler drops followers whose inbox has failed too many
// consecutive deliveries. Keeps the fan-out from burning retries on servers
// that are gone for good.
type SweepUnreachableHandler struct {
	followers follower.Repository
	store     kv.Store
	threshold int64
}

func NewSweepUnreachableHandler(followers follower.Repository, store kv.Store, threshold int) *SweepUnreachableHandler {
	return &SweepUnreachableHandler{
		followers: followers,
		store:     store,
		threshold: int64(threshold),
	}
}

func (h *SweepUnreachableHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	counts, err := h.store.HashGetAll(ctx, failureCountsKey)
	if err != nil {
		return err
	}

	removed := 0
	for actorURI, raw := range counts {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < h.threshold {
			continue
		}
		if err := h.followers.Remove(ctx, actorURI); err != nil {
			logger.Error("remove unreachable follower", err)
			continue
		}
		if err := h.store.HashDelete(ctx, failureCountsKey, actorURI); err != nil {
			logger.Error("clear failure counter", err)
		}
		removed++
	}

	if removed > 0 {
		logger.Info("unreachable followers swept", map[string]interface{}{
			"removed": removed,
		})
	}
	return nil
}
