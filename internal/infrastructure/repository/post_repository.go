package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/post"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/db/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Paginate(ctx context.Context, filters domain.ListFilters, page, perPage int) (domain.Page, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{})

	if filters.Name != "" || filters.Description != "" {
		or := r.db.Where("1 = 0")
		if filters.Name != "" {
			or = or.Or("title ILIKE ?", "%"+filters.Name+"%")
		}
		if filters.Description != "" {
			or = or.Or("description ILIKE ?", "%"+filters.Description+"%")
		}
		query = query.Where(or)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Date != nil {
		query = query.Where("DATE(created_at) = DATE(?)", *filters.Date)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return domain.Page{}, fmt.Errorf("count posts: %w", err)
	}

	var rows []models.Post
	err := query.Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error
	if err != nil {
		return domain.Page{}, fmt.Errorf("list posts: %w", err)
	}

	items := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		items = append(items, postToDomain(row))
	}

	return domain.Page{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pageCount(total, perPage),
	}, nil
}

func (r *PostRepository) GetByID(ctx context.Context, postID int64) (*domain.Post, error) {
	var row models.Post
	err := r.db.WithContext(ctx).First(&row, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	p := postToDomain(row)
	return &p, nil
}

func (r *PostRepository) TitleExists(ctx context.Context, title string, excludeID int64) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("title = ?", title)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return count > 0, nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	row := postFromDomain(*p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	*p = postToDomain(row)
	return nil
}

func (r *PostRepository) Update(ctx context.Context, p *domain.Post) error {
	row := postFromDomain(*p)
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", row.ID).Updates(map[string]any{
		"title":           row.Title,
		"description":     row.Description,
		"status":          row.Status,
		"updated_user_id": row.UpdatedUserID,
	}).Error; err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

func (r *PostRepository) SoftDelete(ctx context.Context, postIDs []int64, deletedUserID int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("id IN ?", postIDs).
			Update("deleted_user_id", deletedUserID).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", postIDs).Delete(&models.Post{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete posts: %w", err)
	}
	return affected, nil
}

func (r *PostRepository) StreamAll(ctx context.Context, fn func(domain.Post) error) error {
	var rows []models.Post
	result := r.db.WithContext(ctx).Order("id").FindInBatches(&rows, 500, func(tx *gorm.DB, batch int) error {
		for _, row := range rows {
			if err := fn(postToDomain(row)); err != nil {
				return err
			}
		}
		return nil
	})
	if result.Error != nil {
		return fmt.Errorf("stream posts: %w", result.Error)
	}
	return nil
}

func postToDomain(row models.Post) domain.Post {
	return domain.Post{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		Status:        row.Status,
		CreateUserID:  row.CreateUserID,
		UpdatedUserID: row.UpdatedUserID,
		DeletedUserID: row.DeletedUserID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func postFromDomain(p domain.Post) models.Post {
	return models.Post{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Status:        p.Status,
		CreateUserID:  p.CreateUserID,
		UpdatedUserID: p.UpdatedUserID,
		DeletedUserID: p.DeletedUserID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func pageCount(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}
