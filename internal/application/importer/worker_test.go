package importer_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/importer"
	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type fakeSource struct {
	data    string
	openErr error
	saved   map[string]string
	removed []string
}

func (f *fakeSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.data)), nil
}

func (f *fakeSource) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "uploads/" + name
	f.saved[path] = string(data)
	return path, nil
}

func (f *fakeSource) Remove(ctx context.Context, sourcePath string) error {
	f.removed = append(f.removed, sourcePath)
	return nil
}

type fakeTitleLookup struct {
	existing map[string]bool
	err      error
}

func (f *fakeTitleLookup) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.existing[title], nil
}

type fakeBulkWriter struct {
	batches  [][]domain.Post
	inserted []domain.Post
	errs     []error
}

func (f *fakeBulkWriter) InsertBatch(ctx context.Context, posts []domain.Post) error {
	call := len(f.batches)
	batch := make([]domain.Post, len(posts))
	copy(batch, posts)
	f.batches = append(f.batches, batch)

	if call < len(f.errs) && f.errs[call] != nil {
		return f.errs[call]
	}
	f.inserted = append(f.inserted, batch...)
	return nil
}

type fakeProgressStore struct {
	progress []int
	status   domain.ImportStatus
	errsSet  []domain.RowError
	failWith error
}

func (f *fakeProgressStore) SetProgress(ctx context.Context, jobID string, progress int) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.progress = append(f.progress, progress)
	return nil
}

func (f *fakeProgressStore) SetStatus(ctx context.Context, jobID string, status domain.ImportStatus) error {
	f.status = status
	return nil
}

func (f *fakeProgressStore) SetErrors(ctx context.Context, jobID string, errs []domain.RowError) error {
	f.errsSet = errs
	return nil
}

func (f *fakeProgressStore) Snapshot(ctx context.Context, jobID string) (domain.ProgressSnapshot, error) {
	snap := domain.ProgressSnapshot{Status: domain.ImportPending}
	if len(f.progress) > 0 {
		snap.Progress = f.progress[len(f.progress)-1]
	}
	if f.status != "" {
		snap.Status = f.status
	}
	snap.Errors = f.errsSet
	return snap, nil
}

const csvHeader = "title,description,status,created_user_id,updated_user_id\n"

func newWorker(source *fakeSource, lookup *fakeTitleLookup, bulk *fakeBulkWriter, store *fakeProgressStore, batchSize int) *importer.Worker {
	return importer.NewWorker(source, lookup, bulk, store, importer.WorkerConfig{BatchSize: batchSize}, nil)
}

func job() domain.ImportJob {
	return domain.ImportJob{ID: "job-1", SourcePath: "uploads/posts.csv", ActingUserID: 1}
}

func TestWorkerRunSuccess(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader +
		"First,one,1,1,1\n" +
		"Second,two,0,2,2\n" +
		"Third,three,1,1,1\n"}
	lookup := &fakeTitleLookup{}
	bulk := &fakeBulkWriter{}
	store := &fakeProgressStore{}

	err := newWorker(source, lookup, bulk, store, 100).Run(context.Background(), job())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.status != domain.ImportSuccess {
		t.Fatalf("expected SUCCESS, got %s", store.status)
	}
	if len(bulk.inserted) != 3 {
		t.Fatalf("expected 3 inserted rows, got %d", len(bulk.inserted))
	}
	if store.errsSet != nil {
		t.Fatalf("expected no errors, got %v", store.errsSet)
	}
	if last := store.progress[len(store.progress)-1]; last != 100 {
		t.Fatalf("expected final progress 100, got %d", last)
	}
	if len(source.removed) != 1 || source.removed[0] != "uploads/posts.csv" {
		t.Fatalf("expected source file removed, got %v", source.removed)
	}
}

func TestWorkerRunDuplicateAndInvalidStatus(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader +
		"A,desc,1,1,1\n" +
		"A,desc,1,1,1\n" +
		"B,desc,5,1,1\n"}
	lookup := &fakeTitleLookup{}
	bulk := &fakeBulkWriter{}
	store := &fakeProgressStore{}

	if err := newWorker(source, lookup, bulk, store, 100).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE, got %s", store.status)
	}
	if len(bulk.inserted) != 1 || bulk.inserted[0].Title != "A" {
		t.Fatalf("expected only title A persisted, got %+v", bulk.inserted)
	}
	if len(store.errsSet) != 2 {
		t.Fatalf("expected 2 row errors, got %v", store.errsSet)
	}
	if store.errsSet[0].Row != 2 || !strings.Contains(store.errsSet[0].Error, "duplicated") {
		t.Fatalf("unexpected first error: %+v", store.errsSet[0])
	}
	if store.errsSet[1].Row != 3 || !strings.Contains(store.errsSet[1].Error, "status must be 0 or 1") {
		t.Fatalf("unexpected second error: %+v", store.errsSet[1])
	}
}

func TestWorkerRunTitleAlreadyTaken(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader +
		"Taken,desc,1,1,1\n" +
		"Fresh,desc,1,1,1\n"}
	lookup := &fakeTitleLookup{existing: map[string]bool{"Taken": true}}
	bulk := &fakeBulkWriter{}
	store := &fakeProgressStore{}

	if err := newWorker(source, lookup, bulk, store, 100).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE, got %s", store.status)
	}
	if len(bulk.inserted) != 1 || bulk.inserted[0].Title != "Fresh" {
		t.Fatalf("expected only Fresh persisted, got %+v", bulk.inserted)
	}
	if len(store.errsSet) != 1 || store.errsSet[0].Row != 1 || !strings.Contains(store.errsSet[0].Error, "already taken") {
		t.Fatalf("unexpected errors: %v", store.errsSet)
	}
}

func TestWorkerRunIdempotentRerun(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader +
		"A,desc,1,1,1\n" +
		"B,desc,1,1,1\n"}
	lookup := &fakeTitleLookup{existing: map[string]bool{"A": true, "B": true}}
	bulk := &fakeBulkWriter{}
	store := &fakeProgressStore{}

	if err := newWorker(source, lookup, bulk, store, 100).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(bulk.inserted) != 0 {
		t.Fatalf("expected zero new rows, got %d", len(bulk.inserted))
	}
	if len(store.errsSet) != 2 {
		t.Fatalf("expected an error per row, got %v", store.errsSet)
	}
}

func TestWorkerRunMissingColumns(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: "title,description\nA,desc\n"}
	lookup := &fakeTitleLookup{}
	bulk := &fakeBulkWriter{}
	store := &fakeProgressStore{}

	if err := newWorker(source, lookup, bulk, store, 100).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE, got %s", store.status)
	}
	if len(bulk.batches) != 0 {
		t.Fatal("expected no batch writes")
	}
	if len(store.errsSet) != 1 {
		t.Fatalf("expected exactly one error, got %v", store.errsSet)
	}
	msg := store.errsSet[0].Error
	for _, col := range []string{"status", "created_user_id", "updated_user_id"} {
		if !strings.Contains(msg, col) {
			t.Fatalf("expected %q named in %q", col, msg)
		}
	}
}

func TestWorkerRunEmptyCSV(t *testing.T) {
	t.Parallel()

	for name, data := range map[string]string{
		"no data rows": csvHeader,
		"empty file":   "",
	} {
		source := &fakeSource{data: data}
		store := &fakeProgressStore{}

		if err := newWorker(source, &fakeTitleLookup{}, &fakeBulkWriter{}, store, 100).Run(context.Background(), job()); err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if store.status != domain.ImportFailure {
			t.Fatalf("%s: expected FAILURE, got %s", name, store.status)
		}
		if len(store.errsSet) != 1 || !strings.Contains(store.errsSet[0].Error, "empty") {
			t.Fatalf("%s: unexpected errors: %v", name, store.errsSet)
		}
	}
}

func TestWorkerRunFileNotFound(t *testing.T) {
	t.Parallel()

	source := &fakeSource{openErr: errors.New("no such file")}
	store := &fakeProgressStore{}

	if err := newWorker(source, &fakeTitleLookup{}, &fakeBulkWriter{}, store, 100).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected detached failure to return nil, got %v", err)
	}

	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE, got %s", store.status)
	}
	if len(store.errsSet) != 1 || store.errsSet[0].Error != "File not found" {
		t.Fatalf("unexpected errors: %v", store.errsSet)
	}
}

func TestWorkerRunBatchConflictContinues(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader +
		"A,desc,1,1,1\n" +
		"B,desc,1,1,1\n" +
		"C,desc,1,1,1\n" +
		"D,desc,1,1,1\n"}
	lookup := &fakeTitleLookup{}
	bulk := &fakeBulkWriter{errs: []error{fmt.Errorf("%w: duplicate key", domain.ErrBatchConflict)}}
	store := &fakeProgressStore{}

	if err := newWorker(source, lookup, bulk, store, 2).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(bulk.batches) != 2 {
		t.Fatalf("expected 2 batches, got %d", len(bulk.batches))
	}
	if len(bulk.inserted) != 2 {
		t.Fatalf("expected 2 rows from the surviving batch, got %d", len(bulk.inserted))
	}
	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE, got %s", store.status)
	}
	if len(store.errsSet) != 1 || store.errsSet[0].Row != domain.RowLastBatch {
		t.Fatalf("expected one last_batch error, got %v", store.errsSet)
	}
}

func TestWorkerRunUnexpectedErrorRecordedAndReturned(t *testing.T) {
	t.Parallel()

	source := &fakeSource{data: csvHeader + "A,desc,1,1,1\n"}
	lookup := &fakeTitleLookup{err: errors.New("connection refused")}
	store := &fakeProgressStore{}

	err := newWorker(source, lookup, &fakeBulkWriter{}, store, 100).Run(context.Background(), job())
	if err == nil {
		t.Fatal("expected error to propagate to the task runner")
	}

	if store.status != domain.ImportFailure {
		t.Fatalf("expected FAILURE captured before re-raise, got %s", store.status)
	}
	if len(store.errsSet) != 1 {
		t.Fatalf("expected single error entry, got %v", store.errsSet)
	}
}

func TestWorkerRunProgressMonotonic(t *testing.T) {
	t.Parallel()

	var rows strings.Builder
	rows.WriteString(csvHeader)
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&rows, "Title %d,desc,1,1,1\n", i)
	}

	source := &fakeSource{data: rows.String()}
	store := &fakeProgressStore{}

	if err := newWorker(source, &fakeTitleLookup{}, &fakeBulkWriter{}, store, 3).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	prev := -1
	for _, p := range store.progress {
		if p < prev {
			t.Fatalf("progress went backwards: %v", store.progress)
		}
		prev = p
	}
	if prev != 100 {
		t.Fatalf("expected progress to end at 100, got %d", prev)
	}
}

func TestWorkerRunFlushesEveryBatch(t *testing.T) {
	t.Parallel()

	var rows strings.Builder
	rows.WriteString(csvHeader)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&rows, "Title %d,desc,1,1,1\n", i)
	}

	bulk := &fakeBulkWriter{}
	source := &fakeSource{data: rows.String()}

	if err := newWorker(source, &fakeTitleLookup{}, bulk, &fakeProgressStore{}, 2).Run(context.Background(), job()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(bulk.batches) != 3 {
		t.Fatalf("expected 3 batches (2+2+1), got %d", len(bulk.batches))
	}
	if len(bulk.batches[2]) != 1 {
		t.Fatalf("expected remainder batch of 1, got %d", len(bulk.batches[2]))
	}
}
