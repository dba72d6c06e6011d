package dto

import (
	"time"

	"formflow/internal/entity"
)

type QuestionRequest struct {
	Contenu string `json:"contenu" validate:"required"`
	Type    string `json:"type" validate:"omitempty,max=50"`
}

type QuestionResponse struct {
	ID      uint   `json:"id"`
	Contenu string `json:"contenu"`
	Type    string `json:"type"`
}

func QuestionResponseFromEntity(question *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:      question.ID,
		Contenu: question.Contenu,
		Type:    question.Type,
	}
}

func QuestionResponsesFromEntities(questions []entity.Question) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, QuestionResponseFromEntity(&questions[i]))
	}
	return responses
}

type QuestionSearchResponse struct {
	Items      []QuestionResponse `json:"items"`
	TotalPages int                `json:"totalPages"`
}

type FormulaireRequest struct {
	Titre string `json:"titre" validate:"required,max=255"`
}

type FormulaireListItem struct {
	ID           uint      `json:"id"`
	Titre        string    `json:"titre"`
	DateCreation time.Time `json:"dateCreation"`
	OwnerEmail   string    `json:"ownerEmail,omitempty"`
}

func FormulaireListFromEntities(formulaires []entity.Formulaire) []FormulaireListItem {
	items := make([]FormulaireListItem, 0, len(formulaires))
	for i := range formulaires {
		f := &formulaires[i]
		items = append(items, FormulaireListItem{
			ID:           f.ID,
			Titre:        f.Titre,
			DateCreation: f.DateCreation,
			OwnerEmail:   f.Owner.Email,
		})
	}
	return items
}

type FormulaireDetailResponse struct {
	ID           uint               `json:"id"`
	Titre        string             `json:"titre"`
	DateCreation time.Time          `json:"dateCreation"`
	OwnerEmail   string             `json:"ownerEmail,omitempty"`
	Questions    []QuestionResponse `json:"questions"`
}

type ReplaceMembershipRequest struct {
	QuestionIDs []uint `json:"questionIds" validate:"required"`
}

type MembershipResponse struct {
	QuestionIDs []uint             `json:"questionIds"`
	Questions   []QuestionResponse `json:"questions"`
}

func MembershipResponseFromEntities(questions []entity.Question) MembershipResponse {
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return MembershipResponse{
		QuestionIDs: ids,
		Questions:   QuestionResponsesFromEntities(questions),
	}
}
