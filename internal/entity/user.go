package entity

import (
	"time"
)

type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleClient      Role = "CLIENT"
	RoleFournisseur Role = "FOURNISSEUR"
)

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdmin, RoleClient, RoleFournisseur:
		return Role(value), true
	}
	return "", false
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null"`

	PasswordHash string `gorm:"type:text;not null" json:"-"`

	Role    Role `gorm:"type:varchar(20);default:'CLIENT';not null"`
	Enabled bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
