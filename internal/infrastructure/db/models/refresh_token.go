package models

import "time"

type RefreshToken struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	TokenHash string `gorm:"size:64;not null;uniqueIndex"`
	Revoked   bool   `gorm:"not null;default:false"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
