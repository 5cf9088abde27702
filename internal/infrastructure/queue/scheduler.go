package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"fedblog-backend/internal/shared"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
	return &Scheduler{scheduler: scheduler}
}

// RegisterMaintenanceJobs wires the recurring jobs.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerSweepUnreachableJob(); err != nil {
		return err
	}
	return nil
}

// registerSweepUnreachableJob prunes followers with dead inboxes once a day.
func (s *Scheduler) registerSweepUnreachableJob() error {
	payload, err := json.Marshal(shared.SweepUnreachablePayload{})
	if err != nil {
		return fmt.Errorf("marshal sweep payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSweepUnreachable, payload)
	_, err = s.scheduler.Register("0 4 * * *", task, asynq.Queue(shared.QueueMaintenance))
	if err != nil {
		return fmt.Errorf("register sweep job: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
