package importer

import (
	"context"
	"fmt"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type ImportProgressOutput struct {
	Progress int               `json:"progress"`
	Status   string            `json:"status"`
	Errors   []domain.RowError `json:"errors,omitempty"`
}

type GetImportProgress interface {
	Execute(ctx context.Context, jobID string) (ImportProgressOutput, error)
}

type getImportProgress struct {
	progress domain.ProgressStore
}

func NewGetImportProgress(progress domain.ProgressStore) GetImportProgress {
	return &getImportProgress{progress: progress}
}

// Execute reads the job's current state. Ids the store has never seen come
// back as {0, PENDING}; there is no distinct not-found answer.
func (uc *getImportProgress) Execute(ctx context.Context, jobID string) (ImportProgressOutput, error) {
	snap, err := uc.progress.Snapshot(ctx, jobID)
	if err != nil {
		return ImportProgressOutput{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := ImportProgressOutput{
		Progress: snap.Progress,
		Status:   string(snap.Status),
	}
	if snap.Status == domain.ImportFailure {
		out.Errors = snap.Errors
	}
	return out, nil
}
