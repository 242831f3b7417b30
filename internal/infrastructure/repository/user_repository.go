package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/infrastructure/db/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Paginate(ctx context.Context, filters domain.ListFilters, excludeUserID int64, page, perPage int) (domain.Page, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if excludeUserID > 0 {
		query = query.Where("id <> ?", excludeUserID)
	}

	if filters.Name != "" || filters.Email != "" {
		or := r.db.Where("1 = 0")
		if filters.Name != "" {
			or = or.Or("name ILIKE ?", "%"+filters.Name+"%")
		}
		if filters.Email != "" {
			or = or.Or("email ILIKE ?", "%"+filters.Email+"%")
		}
		query = query.Where(or)
	}
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at < ?", filters.EndDate.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return domain.Page{}, fmt.Errorf("count users: %w", err)
	}

	var rows []models.User
	err := query.Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&rows).Error
	if err != nil {
		return domain.Page{}, fmt.Errorf("list users: %w", err)
	}

	items := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, userToDomain(row))
	}

	return domain.Page{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pageCount(total, perPage),
	}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ?", userID))
}

func (r *UserRepository) GetActiveUnlocked(ctx context.Context, userID int64) (*domain.User, error) {
	return r.first(ctx, r.db.WithContext(ctx).Where("id = ? AND lock_flg = ?", userID, domain.Unlocked))
}

func (r *UserRepository) first(ctx context.Context, query *gorm.DB) (*domain.User, error) {
	var row models.User
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := userToDomain(row)
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, "email = ?", email)
}

func (r *UserRepository) FindActiveUnlockedByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND lock_flg = ?", email, domain.Unlocked).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	u := userToDomain(row)
	return &u, nil
}

func (r *UserRepository) FindByName(ctx context.Context, name string) (*domain.User, error) {
	return r.find(ctx, "name = ?", name)
}

// find returns nil without error when no row matches; callers use it for
// existence checks where absence is the common case.
func (r *UserRepository) find(ctx context.Context, cond string, arg any) (*domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := userToDomain(row)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	row := userFromDomain(*u)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	*u = userToDomain(row)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	row := userFromDomain(*u)
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", row.ID).Updates(map[string]any{
		"name":            row.Name,
		"email":           row.Email,
		"password":        row.Password,
		"profile_path":    row.ProfilePath,
		"role":            row.Role,
		"dob":             row.DOB,
		"phone":           row.Phone,
		"address":         row.Address,
		"lock_flg":        row.LockFlg,
		"lock_count":      row.LockCount,
		"last_lock_at":    row.LastLockAt,
		"last_login_at":   row.LastLoginAt,
		"updated_user_id": row.UpdatedUserID,
	}).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, userIDs []int64, deletedUserID int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id IN ?", userIDs).
			Update("deleted_user_id", deletedUserID).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", userIDs).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete users: %w", err)
	}
	return affected, nil
}

func (r *UserRepository) LockAll(ctx context.Context, userIDs []int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", userIDs).
		Updates(map[string]any{
			"lock_flg":     domain.Locked,
			"lock_count":   gorm.Expr("COALESCE(lock_count, 0) + 1"),
			"last_lock_at": time.Now(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("lock users: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *UserRepository) UnlockAll(ctx context.Context, userIDs []int64) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", userIDs).
		Updates(map[string]any{
			"lock_flg":     domain.Unlocked,
			"last_lock_at": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("unlock users: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func userToDomain(row models.User) domain.User {
	return domain.User{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		Password:      row.Password,
		ProfilePath:   row.ProfilePath,
		Role:          domain.Role(row.Role),
		DOB:           row.DOB,
		Phone:         row.Phone,
		Address:       row.Address,
		LockFlg:       row.LockFlg,
		LockCount:     row.LockCount,
		LastLockAt:    row.LastLockAt,
		LastLoginAt:   row.LastLoginAt,
		CreateUserID:  row.CreateUserID,
		UpdatedUserID: row.UpdatedUserID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func userFromDomain(u domain.User) models.User {
	return models.User{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Password:      u.Password,
		ProfilePath:   u.ProfilePath,
		Role:          int(u.Role),
		DOB:           u.DOB,
		Phone:         u.Phone,
		Address:       u.Address,
		LockFlg:       u.LockFlg,
		LockCount:     u.LockCount,
		LastLockAt:    u.LastLockAt,
		LastLoginAt:   u.LastLoginAt,
		CreateUserID:  u.CreateUserID,
		UpdatedUserID: u.UpdatedUserID,
	}
}
