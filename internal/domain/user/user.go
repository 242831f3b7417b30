package user

import (
	"net/mail"
	"strings"
	"time"
)

type Role int

const (
	RoleAdmin Role = 0
	RoleUser  Role = 1
)

const (
	Unlocked = 0
	Locked   = 1
)

type User struct {
	ID          int64
	Name        string
	Email       string
	Password    string
	ProfilePath string
	Role        Role
	DOB         *time.Time
	Phone       string
	Address     string
	LockFlg     int
	LockCount   int
	LastLockAt  *time.Time
	LastLoginAt *time.Time

	CreateUserID  *int64
	UpdatedUserID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewUser(name, email, hashedPassword string, role Role) (User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return User{}, ErrInvalidName
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidEmail
	}
	if role != RoleAdmin && role != RoleUser {
		return User{}, ErrInvalidRole
	}

	return User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		LockFlg:  Unlocked,
	}, nil
}

func (u *User) Locked() bool {
	return u.LockFlg == Locked
}

func (u *User) Lock(now time.Time) {
	u.LockFlg = Locked
	u.LockCount++
	u.LastLockAt = &now
}

func (u *User) Unlock() {
	u.LockFlg = Unlocked
	u.LastLockAt = nil
}
