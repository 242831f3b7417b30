package progress_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/progress"
)

func testStore(t *testing.T) *progress.RedisStore {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	t.Cleanup(func() { client.Close() })

	return progress.NewRedisStore(client, time.Minute)
}

func TestSnapshotUnknownJobIntegration(t *testing.T) {
	store := testStore(t)

	snap, err := store.Snapshot(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Progress != 0 || snap.Status != domain.ImportPending {
		t.Fatalf("unknown job should read {0, PENDING}, got %+v", snap)
	}
	if snap.Errors != nil {
		t.Fatalf("unknown job should have no errors, got %v", snap.Errors)
	}
}

func TestSnapshotSuccessIntegration(t *testing.T) {
	store := testStore(t)
	jobID := uuid.NewString()
	ctx := context.Background()

	if err := store.SetProgress(ctx, jobID, 100); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	if err := store.SetStatus(ctx, jobID, domain.ImportSuccess); err != nil {
		t.Fatalf("set status: %v", err)
	}

	snap, err := store.Snapshot(ctx, jobID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Progress != 100 || snap.Status != domain.ImportSuccess {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Errors != nil {
		t.Fatalf("a successful job should carry no errors, got %v", snap.Errors)
	}
}

func TestSnapshotFailureCarriesErrorsIntegration(t *testing.T) {
	store := testStore(t)
	jobID := uuid.NewString()
	ctx := context.Background()

	rowErrs := []domain.RowError{
		{Row: 2, Error: "title duplicated"},
		{Row: domain.RowLastBatch, Error: "duplicate key value"},
	}
	if err := store.SetProgress(ctx, jobID, 100); err != nil {
		t.Fatalf("set progress: %v", err)
	}
	if err := store.SetErrors(ctx, jobID, rowErrs); err != nil {
		t.Fatalf("set errors: %v", err)
	}
	if err := store.SetStatus(ctx, jobID, domain.ImportFailure); err != nil {
		t.Fatalf("set status: %v", err)
	}

	snap, err := store.Snapshot(ctx, jobID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Status != domain.ImportFailure {
		t.Fatalf("unexpected status: %v", snap.Status)
	}
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors back, got %v", snap.Errors)
	}
	if snap.Errors[0].Error != "title duplicated" {
		t.Fatalf("unexpected first error: %+v", snap.Errors[0])
	}
	// JSON round-trips the row marker; the numeric row comes back as a number.
	if snap.Errors[1].Row != domain.RowLastBatch {
		t.Fatalf("unexpected batch marker: %#v", snap.Errors[1].Row)
	}
}
