package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

const uniqueViolation = "23505"

// PostBulkInsertRepository commits one import batch per transaction over the
// pgx pool, bypassing the ORM for throughput. A uniqueness race lost at
// commit time surfaces as ErrBatchConflict so the worker can record it and
// move on.
type PostBulkInsertRepository struct {
	pool *pgxpool.Pool
}

func NewPostBulkInsertRepository(pool *pgxpool.Pool) *PostBulkInsertRepository {
	return &PostBulkInsertRepository{pool: pool}
}

func (r *PostBulkInsertRepository) InsertBatch(ctx context.Context, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows := make([][]any, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []any{
			p.Title, p.Description, p.Status,
			p.CreateUserID, p.UpdatedUserID,
			p.CreatedAt, p.UpdatedAt,
		})
	}

	if _, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"posts"},
		[]string{"title", "description", "status", "create_user_id", "updated_user_id", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %v", domain.ErrBatchConflict, pgErr.Detail)
		}
		return fmt.Errorf("copy posts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %v", domain.ErrBatchConflict, pgErr.Detail)
		}
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}
