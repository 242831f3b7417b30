package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID            int64      `gorm:"primaryKey;autoIncrement"`
	Name          string     `gorm:"size:255;not null;uniqueIndex"`
	Email         string     `gorm:"size:255;not null;uniqueIndex"`
	Password      string     `gorm:"size:255"`
	ProfilePath   string     `gorm:"size:255"`
	Role          int        `gorm:"not null;default:1"`
	DOB           *time.Time `gorm:"column:dob"`
	Phone         string     `gorm:"size:20"`
	Address       string     `gorm:"size:255"`
	LockFlg       int        `gorm:"not null;default:0"`
	LockCount     int        `gorm:"default:0"`
	LastLockAt    *time.Time
	LastLoginAt   *time.Time
	CreateUserID  *int64
	UpdatedUserID *int64
	DeletedUserID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
