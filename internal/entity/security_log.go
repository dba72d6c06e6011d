package entity

import (
	"time"

	"gorm.io/datatypes"
)

type SecurityAction string

const (
	LoginSuccess  SecurityAction = "login_success"
	LoginFailed   SecurityAction = "login_failed"
	ResetRequest  SecurityAction = "reset_requested"
	PasswordReset SecurityAction = "password_reset"
)

type SecurityLog struct {
	ID uint `gorm:"primaryKey"`

	UserID *uint `gorm:"index"`
	User   *User `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(30);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
