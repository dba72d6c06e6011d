package dto

import (
	"time"

	"formflow/internal/entity"
	"formflow/internal/service"
)

type SubmissionAnswer struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Valeur     string `json:"valeur"`
}

type SubmissionRequest struct {
	Answers []SubmissionAnswer `json:"answers" validate:"required,min=1,dive"`
}

type ReponseClientResponse struct {
	ID             uint      `json:"id"`
	QuestionID     uint      `json:"questionId"`
	Valeur         string    `json:"valeur"`
	DateSoumission time.Time `json:"dateSoumission"`
}

func ReponseClientResponsesFromEntities(answers []entity.ReponseClient) []ReponseClientResponse {
	responses := make([]ReponseClientResponse, 0, len(answers))
	for _, a := range answers {
		responses = append(responses, ReponseClientResponse{
			ID:             a.ID,
			QuestionID:     a.QuestionID,
			Valeur:         a.Valeur,
			DateSoumission: a.DateSoumission,
		})
	}
	return responses
}

type UpsertReviewItem struct {
	ReponseClientID uint   `json:"reponseClientId" validate:"required"`
	Commentaire     string `json:"commentaire"`
}

type UpsertReviewBatchRequest struct {
	Items []UpsertReviewItem `json:"items" validate:"required,min=1,dive"`
}

type UpsertReviewBatchResponse struct {
	Accepted int `json:"accepted"`
}

type ClientAnswerViewResponse struct {
	ReponseClientID uint `json:"reponseClientId"`

	QuestionID    uint   `json:"questionId"`
	QuestionLabel string `json:"questionLabel"`
	QuestionType  string `json:"questionType"`

	ClientUserID uint   `json:"clientUserId"`
	ClientEmail  string `json:"clientEmail"`

	ClientAnswer string    `json:"clientAnswer"`
	SubmittedAt  time.Time `json:"submittedAt"`

	FournisseurResponseID  *uint      `json:"fournisseurResponseId"`
	FournisseurComment     *string    `json:"fournisseurComment"`
	FournisseurRespondedAt *time.Time `json:"fournisseurRespondedAt"`
}

func ClientAnswerViewsFromService(views []service.ClientAnswerView) []ClientAnswerViewResponse {
	responses := make([]ClientAnswerViewResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, ClientAnswerViewResponse{
			ReponseClientID:        v.ReponseClientID,
			QuestionID:             v.QuestionID,
			QuestionLabel:          v.QuestionLabel,
			QuestionType:           v.QuestionType,
			ClientUserID:           v.ClientUserID,
			ClientEmail:            v.ClientEmail,
			ClientAnswer:           v.ClientAnswer,
			SubmittedAt:            v.SubmittedAt,
			FournisseurResponseID:  v.FournisseurResponseID,
			FournisseurComment:     v.FournisseurComment,
			FournisseurRespondedAt: v.FournisseurRespondedAt,
		})
	}
	return responses
}
