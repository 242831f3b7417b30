package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Client enqueues import jobs for the worker process. The returned id is the
// asynq task id, which doubles as the progress-store job id.
type Client struct {
	client *asynq.Client
	queue  string
	policy RetryPolicy
}

func NewClient(redisOpt asynq.RedisClientOpt, queueName string, policy RetryPolicy) *Client {
	return &Client{
		client: asynq.NewClient(redisOpt),
		queue:  queueName,
		policy: policy,
	}
}

func (c *Client) Enqueue(ctx context.Context, sourcePath string, actingUserID int64) (string, error) {
	payload, err := json.Marshal(ImportPostsPayload{
		SourcePath:   sourcePath,
		ActingUserID: actingUserID,
	})
	if err != nil {
		return "", fmt.Errorf("marshal import payload: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx,
		asynq.NewTask(TypeImportPostsCSV, payload),
		asynq.Queue(c.queue),
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(c.policy.MaxAttempts),
	)
	if err != nil {
		return "", fmt.Errorf("enqueue import task: %w", err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
