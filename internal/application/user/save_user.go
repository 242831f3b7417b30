package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"time"

	"github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/auth"
	domain "github.com/Saw-Kyaw-Myint/bulletin-board/internal/domain/user"
)

// ProfileStorage stores uploaded profile images and returns the stored name.
type ProfileStorage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

type CreateUserInput struct {
	Name         string
	Email        string
	Password     string
	Role         int
	Phone        string
	DOB          *time.Time
	Address      string
	ProfileName  string
	Profile      io.Reader
	ActingUserID int64
}

type CreateUser interface {
	Execute(ctx context.Context, in CreateUserInput) (UserOutput, error)
}

type createUser struct {
	repo    domain.Repository
	hasher  auth.PasswordHasher
	storage ProfileStorage
}

func NewCreateUser(repo domain.Repository, hasher auth.PasswordHasher, storage ProfileStorage) CreateUser {
	return &createUser{repo: repo, hasher: hasher, storage: storage}
}

func (uc *createUser) Execute(ctx context.Context, in CreateUserInput) (UserOutput, error) {
	if in.Profile == nil {
		return UserOutput{}, ErrMissingProfile
	}

	if existing, err := uc.repo.FindByName(ctx, in.Name); err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	} else if existing != nil {
		return UserOutput{}, ErrNameTaken
	}
	if existing, err := uc.repo.FindByEmail(ctx, in.Email); err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	} else if existing != nil {
		return UserOutput{}, ErrEmailTaken
	}

	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}

	u, err := domain.NewUser(in.Name, in.Email, hashed, domain.Role(in.Role))
	if err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUser, err)
	}
	u.Phone = in.Phone
	u.DOB = in.DOB
	u.Address = in.Address
	u.CreateUserID = &in.ActingUserID
	u.UpdatedUserID = &in.ActingUserID

	path, err := uc.storage.Save(ctx, in.ProfileName, in.Profile)
	if err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}
	u.ProfilePath = path

	if err := uc.repo.Create(ctx, &u); err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}
	return toOutput(u), nil
}

type UpdateUserInput struct {
	UserID       int64
	Name         *string
	Email        *string
	Role         *int
	Phone        *string
	DOB          *time.Time
	Address      *string
	ActingUserID int64
}

type UpdateUser interface {
	Execute(ctx context.Context, in UpdateUserInput) (UserOutput, error)
}

type updateUser struct {
	repo domain.Repository
}

func NewUpdateUser(repo domain.Repository) UpdateUser {
	return &updateUser{repo: repo}
}

func (uc *updateUser) Execute(ctx context.Context, in UpdateUserInput) (UserOutput, error) {
	u, err := uc.repo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return UserOutput{}, ErrUserNotFound
		}
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}

	if in.Email != nil {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			return UserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUser, domain.ErrInvalidEmail)
		}
		existing, err := uc.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
		}
		if existing != nil && existing.ID != u.ID {
			return UserOutput{}, ErrEmailTaken
		}
		u.Email = *in.Email
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return UserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUser, domain.ErrInvalidName)
		}
		existing, err := uc.repo.FindByName(ctx, name)
		if err != nil {
			return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
		}
		if existing != nil && existing.ID != u.ID {
			return UserOutput{}, ErrNameTaken
		}
		u.Name = name
	}
	if in.Role != nil {
		role := domain.Role(*in.Role)
		if role != domain.RoleAdmin && role != domain.RoleUser {
			return UserOutput{}, fmt.Errorf("%w: %v", ErrInvalidUser, domain.ErrInvalidRole)
		}
		u.Role = role
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.DOB != nil {
		u.DOB = in.DOB
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	u.UpdatedUserID = &in.ActingUserID

	if err := uc.repo.Update(ctx, u); err != nil {
		return UserOutput{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}
	return toOutput(*u), nil
}
