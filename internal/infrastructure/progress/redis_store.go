package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

const (
	progressKeyPrefix = "csv_progress:"
	statusKeyPrefix   = "csv_status:"
	errorsKeyPrefix   = "csv_errors:"
)

// RedisStore keeps per-job import state under three keys per job id. Keys
// expire after the configured TTL; a job polled after expiry reads as
// PENDING, which is also the answer for ids that never existed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) SetProgress(ctx context.Context, jobID string, progress int) error {
	if err := s.client.Set(ctx, progressKeyPrefix+jobID, progress, s.ttl).Err(); err != nil {
		return fmt.Errorf("set progress: %w", err)
	}
	return nil
}

func (s *RedisStore) SetStatus(ctx context.Context, jobID string, status domain.ImportStatus) error {
	if err := s.client.Set(ctx, statusKeyPrefix+jobID, string(status), s.ttl).Err(); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

func (s *RedisStore) SetErrors(ctx context.Context, jobID string, errs []domain.RowError) error {
	payload, err := json.Marshal(errs)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}
	if err := s.client.Set(ctx, errorsKeyPrefix+jobID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set errors: %w", err)
	}
	return nil
}

func (s *RedisStore) Snapshot(ctx context.Context, jobID string) (domain.ProgressSnapshot, error) {
	snap := domain.ProgressSnapshot{Status: domain.ImportPending}

	raw, err := s.client.Get(ctx, progressKeyPrefix+jobID).Result()
	switch {
	case err == nil:
		if progress, convErr := strconv.Atoi(raw); convErr == nil {
			snap.Progress = progress
		}
	case !errors.Is(err, redis.Nil):
		return domain.ProgressSnapshot{}, fmt.Errorf("get progress: %w", err)
	}

	status, err := s.client.Get(ctx, statusKeyPrefix+jobID).Result()
	switch {
	case err == nil:
		snap.Status = domain.ImportStatus(status)
	case !errors.Is(err, redis.Nil):
		return domain.ProgressSnapshot{}, fmt.Errorf("get status: %w", err)
	}

	if snap.Status != domain.ImportFailure {
		return snap, nil
	}

	payload, err := s.client.Get(ctx, errorsKeyPrefix+jobID).Result()
	switch {
	case err == nil:
		if unmarshalErr := json.Unmarshal([]byte(payload), &snap.Errors); unmarshalErr != nil {
			return domain.ProgressSnapshot{}, fmt.Errorf("decode errors: %w", unmarshalErr)
		}
	case !errors.Is(err, redis.Nil):
		return domain.ProgressSnapshot{}, fmt.Errorf("get errors: %w", err)
	}
	return snap, nil
}
