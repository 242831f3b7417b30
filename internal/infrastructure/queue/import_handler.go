package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type importRunner interface {
	Run(ctx context.Context, job domain.ImportJob) error
}

// ImportTaskHandler adapts the importer worker to asynq. It applies the
// retry policy: connectivity failures go back to the queue, everything else
// is wrapped with SkipRetry since the worker has already recorded a terminal
// status for the job.
type ImportTaskHandler struct {
	worker importRunner
	policy RetryPolicy
	log    *logrus.Logger

	// taskID is asynq.GetTaskID unless a test swaps it out; asynq offers no
	// way to stamp an id onto a hand-built context.
	taskID func(ctx context.Context) (string, bool)
}

func NewImportTaskHandler(worker importRunner, policy RetryPolicy, log *logrus.Logger) *ImportTaskHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImportTaskHandler{worker: worker, policy: policy, log: log, taskID: asynq.GetTaskID}
}

func (h *ImportTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID, ok := h.taskID(ctx)
	if !ok {
		return fmt.Errorf("task id missing from context: %w", asynq.SkipRetry)
	}

	var payload ImportPostsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode import payload: %v: %w", err, asynq.SkipRetry)
	}

	err := h.worker.Run(ctx, domain.ImportJob{
		ID:           taskID,
		SourcePath:   payload.SourcePath,
		ActingUserID: payload.ActingUserID,
	})
	if err == nil {
		return nil
	}

	if h.policy.Retryable(err) {
		h.log.WithField("job_id", taskID).WithError(err).Warn("import failed, will retry")
		return err
	}
	h.log.WithField("job_id", taskID).WithError(err).Error("import failed")
	return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
}
