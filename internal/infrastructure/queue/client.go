package queue

import (
	"github.com/hibiken/asynq"
)

// NewClient creates the asynq producer used by the API process to enqueue
// delivery tasks.
func NewClient(redisAddr, password string, db int) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})
}
