package service

import (
	"context"
	"errors"
	"time"

	"formflow/internal/entity"
	"formflow/internal/repository"

	"gorm.io/gorm"
)

// ClientAnswerView joins one client answer with its question, submitting
// client and the fournisseur comment when one exists.
type ClientAnswerView struct {
	ReponseClientID uint

	QuestionID    uint
	QuestionLabel string
	QuestionType  string

	ClientUserID uint
	ClientEmail  string

	ClientAnswer string
	SubmittedAt  time.Time

	FournisseurResponseID  *uint
	FournisseurComment     *string
	FournisseurRespondedAt *time.Time
}

type ReviewService struct {
	formulaires repository.FormulaireRepository
	answers     repository.ReponseClientRepository
	comments    repository.ReponseFournisseurRepository
	clock       Clock
}

func NewReviewService(
	formulaires repository.FormulaireRepository,
	answers repository.ReponseClientRepository,
	comments repository.ReponseFournisseurRepository,
	clock Clock,
) *ReviewService {
	return &ReviewService{formulaires: formulaires, answers: answers, comments: comments, clock: clock}
}

// ListReviews flattens every answer of the formulaire, optionally filtered
// to one client, into review rows.
func (s *ReviewService) ListReviews(ctx context.Context, formulaireID uint, clientUserID *uint) ([]ClientAnswerView, error) {
	formulaire, err := s.formulaires.FindByID(ctx, formulaireID)
	if err != nil {
		return nil, err
	}
	if formulaire == nil {
		return nil, ErrNotFound
	}

	var answers []entity.ReponseClient
	if clientUserID != nil {
		answers, err = s.answers.FindAllByUserAndFormulaire(ctx, *clientUserID, formulaireID)
	} else {
		answers, err = s.answers.FindAllByFormulaire(ctx, formulaireID)
	}
	if err != nil {
		return nil, err
	}

	answerIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		answerIDs = append(answerIDs, a.ID)
	}
	comments, err := s.comments.FindByReponseClientIDs(ctx, answerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]ClientAnswerView, 0, len(answers))
	for _, a := range answers {
		view := ClientAnswerView{
			ReponseClientID: a.ID,
			QuestionID:      a.QuestionID,
			QuestionLabel:   a.Question.Contenu,
			QuestionType:    a.Question.Type,
			ClientUserID:    a.UserID,
			ClientEmail:     a.User.Email,
			ClientAnswer:    a.Valeur,
			SubmittedAt:     a.DateSoumission,
		}
		if comment, ok := comments[a.ID]; ok {
			id := comment.ID
			text := comment.Commentaire
			at := comment.DateReponse
			view.FournisseurResponseID = &id
			view.FournisseurComment = &text
			view.FournisseurRespondedAt = &at
		}
		views = append(views, view)
	}
	return views, nil
}

// UpsertBatch writes all comments or none of them.
func (s *ReviewService) UpsertBatch(ctx context.Context, reviewerID uint, items []repository.CommentUpsert) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	accepted, err := s.comments.UpsertBatch(ctx, reviewerID, items, s.clock.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	return accepted, err
}

// UpsertOne is the single-item convenience over UpsertBatch.
func (s *ReviewService) UpsertOne(ctx context.Context, reviewerID uint, item repository.CommentUpsert) error {
	_, err := s.UpsertBatch(ctx, reviewerID, []repository.CommentUpsert{item})
	return err
}
