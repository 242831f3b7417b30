package post

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
)

var exportHeader = []string{
	"id", "title", "description", "status",
	"created_user_id", "updated_user_id",
	"deleted_user_id", "deleted_at", "created_at", "updated_at",
}

type ExportPosts interface {
	Execute(ctx context.Context, w io.Writer) error
}

type exportPosts struct {
	repo domain.Repository
}

func NewExportPosts(repo domain.Repository) ExportPosts {
	return &exportPosts{repo: repo}
}

// Execute streams every live post as one CSV row. Rows are written as they
// come off the repository cursor, so the full result set is never held in
// memory.
func (uc *exportPosts) Execute(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrExportPosts, err)
	}

	err := uc.repo.StreamAll(ctx, func(p domain.Post) error {
		deletedUser := ""
		if p.DeletedUserID != nil {
			deletedUser = strconv.FormatInt(*p.DeletedUserID, 10)
		}
		return cw.Write([]string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			p.Description,
			strconv.Itoa(p.Status),
			strconv.FormatInt(p.CreateUserID, 10),
			strconv.FormatInt(p.UpdatedUserID, 10),
			deletedUser,
			"",
			p.CreatedAt.Format(time.RFC3339),
			p.UpdatedAt.Format(time.RFC3339),
		})
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportPosts, err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExportPosts, err)
	}
	return nil
}
