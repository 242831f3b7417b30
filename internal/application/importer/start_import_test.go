package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/application/importer"
	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

type fakeEnqueuer struct {
	jobID string
	err   error
	path  string
	user  int64
}

func (f *fakeEnqueuer) Enqueue(ctx context.Context, sourcePath string, actingUserID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.path = sourcePath
	f.user = actingUserID
	return f.jobID, nil
}

func TestStartImportSuccess(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	queue := &fakeEnqueuer{jobID: "task-1"}
	uc := importer.NewStartImport(source, queue, 2*1024*1024)

	out, err := uc.Execute(context.Background(), importer.StartImportInput{
		Filename:     "posts.csv",
		Size:         128,
		File:         strings.NewReader(csvHeader + "A,desc,1,1,1\n"),
		ActingUserID: 9,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.TaskID != "task-1" {
		t.Fatalf("unexpected task id: %s", out.TaskID)
	}
	if queue.user != 9 {
		t.Fatalf("expected acting user forwarded, got %d", queue.user)
	}
	if _, ok := source.saved[queue.path]; !ok {
		t.Fatalf("expected enqueued path to point at the saved file, got %s", queue.path)
	}
}

func TestStartImportRejectsMissingFile(t *testing.T) {
	t.Parallel()

	uc := importer.NewStartImport(&fakeSource{}, &fakeEnqueuer{jobID: "x"}, 1024)

	_, err := uc.Execute(context.Background(), importer.StartImportInput{Filename: "posts.csv"})
	if !errors.Is(err, importer.ErrMissingFile) {
		t.Fatalf("expected ErrMissingFile, got %v", err)
	}
}

func TestStartImportRejectsWrongExtension(t *testing.T) {
	t.Parallel()

	uc := importer.NewStartImport(&fakeSource{}, &fakeEnqueuer{jobID: "x"}, 1024)

	_, err := uc.Execute(context.Background(), importer.StartImportInput{
		Filename: "posts.txt",
		Size:     10,
		File:     strings.NewReader("data"),
	})
	if !errors.Is(err, importer.ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestStartImportRejectsOversizeFile(t *testing.T) {
	t.Parallel()

	uc := importer.NewStartImport(&fakeSource{}, &fakeEnqueuer{jobID: "x"}, 1024)

	_, err := uc.Execute(context.Background(), importer.StartImportInput{
		Filename: "posts.csv",
		Size:     2048,
		File:     strings.NewReader("data"),
	})
	if !errors.Is(err, importer.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestStartImportEnqueueFailureRemovesFile(t *testing.T) {
	t.Parallel()

	source := &fakeSource{}
	uc := importer.NewStartImport(source, &fakeEnqueuer{err: errors.New("broker down")}, 1024)

	_, err := uc.Execute(context.Background(), importer.StartImportInput{
		Filename: "posts.csv",
		Size:     10,
		File:     strings.NewReader("data"),
	})
	if !errors.Is(err, importer.ErrEnqueueImport) {
		t.Fatalf("expected ErrEnqueueImport, got %v", err)
	}
	if len(source.removed) != 1 {
		t.Fatalf("expected orphaned upload removed, got %v", source.removed)
	}
}

func TestGetImportProgressUnknownJobIsPending(t *testing.T) {
	t.Parallel()

	uc := importer.NewGetImportProgress(&fakeProgressStore{})

	out, err := uc.Execute(context.Background(), "nope")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Progress != 0 || out.Status != string(domain.ImportPending) {
		t.Fatalf("expected {0, PENDING}, got %+v", out)
	}
	if out.Errors != nil {
		t.Fatalf("expected no errors field, got %v", out.Errors)
	}
}

func TestGetImportProgressFailureIncludesErrors(t *testing.T) {
	t.Parallel()

	store := &fakeProgressStore{
		progress: []int{66},
		status:   domain.ImportFailure,
		errsSet:  []domain.RowError{{Row: 2, Error: "title duplicated"}},
	}
	uc := importer.NewGetImportProgress(store)

	out, err := uc.Execute(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Status != string(domain.ImportFailure) || out.Progress != 66 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(out.Errors) != 1 || out.Errors[0].Row != 2 {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
}

func TestGetImportProgressSuccessOmitsErrors(t *testing.T) {
	t.Parallel()

	store := &fakeProgressStore{
		progress: []int{100},
		status:   domain.ImportSuccess,
		errsSet:  []domain.RowError{{Row: 1, Error: "stale"}},
	}
	uc := importer.NewGetImportProgress(store)

	out, err := uc.Execute(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Errors != nil {
		t.Fatalf("errors must only accompany FAILURE, got %v", out.Errors)
	}
}
