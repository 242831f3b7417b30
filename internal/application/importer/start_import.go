package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type StartImportInput struct {
	Filename     string
	Size         int64
	File         io.Reader
	ActingUserID int64
}

type StartImportOutput struct {
	Msg    string `json:"msg"`
	TaskID string `json:"task_id"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type startImport struct {
	storage domain.UploadSource
	queue   domain.ImportEnqueuer
	maxSize int64
}

func NewStartImport(storage domain.UploadSource, queue domain.ImportEnqueuer, maxSize int64) StartImport {
	return &startImport{storage: storage, queue: queue, maxSize: maxSize}
}

// Execute validates the upload, spills it to local storage and enqueues the
// import job. It returns as soon as the job id is known; the request never
// waits on CSV processing.
func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	if in.File == nil || strings.TrimSpace(in.Filename) == "" {
		return StartImportOutput{}, ErrMissingFile
	}
	if strings.ToLower(filepath.Ext(in.Filename)) != ".csv" {
		return StartImportOutput{}, ErrInvalidFileType
	}
	if in.Size > uc.maxSize {
		return StartImportOutput{}, ErrFileTooLarge
	}

	path, err := uc.storage.Save(ctx, in.Filename, in.File)
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImport, err)
	}

	taskID, err := uc.queue.Enqueue(ctx, path, in.ActingUserID)
	if err != nil {
		// The file is ours until the hand-off succeeds.
		_ = uc.storage.Remove(ctx, path)
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImport, err)
	}

	return StartImportOutput{
		Msg:    "Import started",
		TaskID: taskID,
	}, nil
}
