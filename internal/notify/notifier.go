package notify

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/zenflow/backend/internal/tasks"
)

// QueueNotifier hands notifications to the background worker through asynq.
// Tasks are enqueued with zero retries: a welcome mail that fails is dropped,
// never replayed.
type QueueNotifier struct {
	client *asynq.Client
}

func NewQueueNotifier(client *asynq.Client) *QueueNotifier {
	return &QueueNotifier{client: client}
}

func (n *QueueNotifier) SendWelcome(ctx context.Context, email, firstName string) error {
	task, err := tasks.NewWelcomeEmailTask(tasks.WelcomeEmailPayload{
		Email:     email,
		FirstName: firstName,
	})
	if err != nil {
		return err
	}

	_, err = n.client.EnqueueContext(ctx, task, asynq.Queue("mail"), asynq.MaxRetry(0))
	return err
}
