package main

import (
	"github.com/hibiken/asynq"

	"fedblog-backend/internal/domains/federation/job"
	"fedblog-backend/internal/shared"
	"fedblog-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	deliverActivity  *job.DeliverActivityHandler
	sweepUnreachable *job.SweepUnreachableHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		deliverActivity: job.NewDeliverActivityHandler(
			c.BlogService,
			c.Deliverer,
			c.Addresser,
			c.Store,
		),
		sweepUnreachable: job.NewSweepUnreachableHandler(
			c.FollowerRepo,
			c.Store,
			c.Config.Federation.UnreachableThreshold,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeDeliverActivity, h.deliverActivity.ProcessTask)
	mux.HandleFunc(shared.TypeSweepUnreachable, h.sweepUnreachable.ProcessTask)
}
