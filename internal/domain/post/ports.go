package post

import (
	"context"
	"io"
	"time"
)

type ListFilters struct {
	Name        string
	Description string
	Status      *int
	Date        *time.Time
}

type Page struct {
	Items   []Post
	Page    int
	PerPage int
	Total   int64
	Pages   int
}

type Repository interface {
	Paginate(ctx context.Context, filters ListFilters, page, perPage int) (Page, error)
	GetByID(ctx context.Context, postID int64) (*Post, error)
	TitleExists(ctx context.Context, title string, excludeID int64) (bool, error)
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	SoftDelete(ctx context.Context, postIDs []int64, deletedUserID int64) (int64, error)
	StreamAll(ctx context.Context, fn func(Post) error) error
}

// BulkWriter commits one staged batch atomically. A failed batch must leave
// no rows behind.
type BulkWriter interface {
	InsertBatch(ctx context.Context, posts []Post) error
}

// ProgressStore is the Redis-backed side channel between the worker and the
// polling endpoint. The worker is the only writer for a given job id.
type ProgressStore interface {
	SetProgress(ctx context.Context, jobID string, progress int) error
	SetStatus(ctx context.Context, jobID string, status ImportStatus) error
	SetErrors(ctx context.Context, jobID string, errs []RowError) error
	Snapshot(ctx context.Context, jobID string) (ProgressSnapshot, error)
}

// ImportEnqueuer hands a job to the worker process and returns its id
// without waiting for processing.
type ImportEnqueuer interface {
	Enqueue(ctx context.Context, sourcePath string, actingUserID int64) (string, error)
}

// UploadSource abstracts the filesystem shared by the submission endpoint
// and the worker.
type UploadSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, sourcePath string) error
}
