package entity

import (
	"time"
)

// ResetCode holds a hashed 6-digit password reset code. Codes expire after
// a short window and are single-use.
type ResetCode struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`

	CodeHash string `gorm:"type:text;not null;index"`

	ExpiresAt time.Time
	UsedAt    *time.Time

	CreatedAt time.Time
}
