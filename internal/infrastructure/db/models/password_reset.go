package models

import "time"

type PasswordReset struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"size:255;not null;index"`
	Token     string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PasswordReset) TableName() string {
	return "password_resets"
}
