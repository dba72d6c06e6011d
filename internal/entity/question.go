package entity

import (
	"time"
)

// Question is a reusable prompt. It lives independently of any formulaire
// and may belong to several of them through the membership join table.
type Question struct {
	ID      uint   `gorm:"primaryKey"`
	Contenu string `gorm:"type:text;not null"`
	Type    string `gorm:"type:varchar(50);index"`

	OwnerID *uint `gorm:"index"`
	Owner   *User `gorm:"foreignKey:OwnerID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
