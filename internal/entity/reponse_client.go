package entity

import (
	"time"
)

// ReponseClient is one client's answer to one question within one
// formulaire. Resubmission overwrites the row; the unique index keeps the
// (formulaire, client, question) triple to a single record.
type ReponseClient struct {
	ID uint `gorm:"primaryKey"`

	FormulaireID uint       `gorm:"not null;uniqueIndex:uk_reponse_client;index"`
	Formulaire   Formulaire `gorm:"constraint:OnDelete:CASCADE"`

	QuestionID uint     `gorm:"not null;uniqueIndex:uk_reponse_client"`
	Question   Question `gorm:"constraint:OnDelete:CASCADE"`

	UserID uint `gorm:"not null;uniqueIndex:uk_reponse_client;index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`

	Valeur         string    `gorm:"type:text"`
	DateSoumission time.Time `gorm:"not null"`
}
