package entity

import (
	"time"
)

type Formulaire struct {
	ID    uint   `gorm:"primaryKey"`
	Titre string `gorm:"type:varchar(255);not null"`

	OwnerID uint `gorm:"not null;index"`
	Owner   User `gorm:"foreignKey:OwnerID"`

	// Membership never holds the same question twice; the join table's
	// composite primary key enforces it.
	Questions []Question `gorm:"many2many:formulaire_questions"`

	DateCreation time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time
}
