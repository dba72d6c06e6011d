package entity

import (
	"time"
)

// ReponseFournisseur annotates exactly one ReponseClient. The unique index
// on reponse_client_id makes every write an overwrite; deleting the answer
// orphan-deletes the comment through the cascade.
type ReponseFournisseur struct {
	ID uint `gorm:"primaryKey"`

	ReponseClientID uint          `gorm:"not null;uniqueIndex"`
	ReponseClient   ReponseClient `gorm:"constraint:OnDelete:CASCADE"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`

	Commentaire string    `gorm:"type:text"`
	DateReponse time.Time `gorm:"not null"`
}
