package transport

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"fedblog-backend/internal/domains/federation"
	"fedblog-backend/internal/domains/follower"
	"fedblog-backend/internal/shared"
	"fedblog-backend/pkg/logger"
)

// enqueuer is the slice of *asynq.Client the transport needs.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqTransport queues one delivery task per recipient. Signing and the HTTP
// POST happen in the worker; retry and backoff are asynq's responsibility,
// so a dead inbox never blocks the publishing request.
type AsynqTransport struct {
	client   enqueuer
	queue    string
	maxRetry int
}

func NewAsynqTransport(client enqueuer, queue string, maxRetry int) *AsynqTransport {
	return &AsynqTransport{client: client, queue: queue, maxRetry: maxRetry}
}

func (t *AsynqTransport) SendActivity(ctx context.Context, senderHandle string, recipients []*follower.Follower, activity *federation.Activity) (*federation.DeliveryReport, error) {
	activityJSON, err := json.Marshal(activity)
	if err != nil {
		return nil, fmt.Errorf("marshal activity: %w", err)
	}

	report := &federation.DeliveryReport{Recipients: len(recipients)}

	// One task per recipient. An enqueue failure is counted and logged but
	// never aborts the remaining dispatches.
	for _, recipient := range recipients {
		payload, err := json.Marshal(shared.DeliverActivityPayload{
			InboxURI:     recipient.InboxURI,
			ActorURI:     recipient.ActorURI,
			ActivityJSON: activityJSON,
		})
		if err != nil {
			report.Failed++
			continue
		}

		task := asynq.NewTask(shared.TypeDeliverActivity, payload)
		_, err = t.client.EnqueueContext(ctx, task,
			asynq.Queue(t.queue),
			asynq.MaxRetry(t.maxRetry),
		)
		if err != nil {
			report.Failed++
			logger.Error(fmt.Sprintf("enqueue delivery to %s", recipient.InboxURI), err)
			continue
		}
		report.Dispatched++
	}

	return report, nil
}

var _ federation.Transport = (*AsynqTransport)(nil)
