package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Title         string `gorm:"size:255;not null;uniqueIndex"`
	Description   string `gorm:"type:text"`
	Status        int    `gorm:"not null;default:1"`
	CreateUserID  int64  `gorm:"not null"`
	UpdatedUserID int64  `gorm:"not null"`
	DeletedUserID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Post) TableName() string {
	return "posts"
}
