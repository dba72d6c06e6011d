package service

import (
	"context"
	"errors"
	"fmt"

	"formflow/internal/entity"
	"formflow/internal/repository"

	"gorm.io/gorm"
)

type AnswerInput struct {
	QuestionID uint
	Valeur     string
}

// SubmissionService accepts a client's answers for a formulaire. A
// submission is a sparse patch: only the provided answers are touched,
// earlier answers to other member questions survive.
type SubmissionService struct {
	formulaires repository.FormulaireRepository
	answers     repository.ReponseClientRepository
	clock       Clock
}

func NewSubmissionService(
	formulaires repository.FormulaireRepository,
	answers repository.ReponseClientRepository,
	clock Clock,
) *SubmissionService {
	return &SubmissionService{formulaires: formulaires, answers: answers, clock: clock}
}

// Submit validates every answer against the formulaire's current
// membership before writing anything; one unassigned question rejects the
// whole submission and leaves no record behind.
func (s *SubmissionService) Submit(ctx context.Context, formulaireID, clientID uint, inputs []AnswerInput) ([]entity.ReponseClient, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no answers provided: %w", ErrInvalidInput)
	}

	members, err := s.formulaires.GetMembership(ctx, formulaireID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	memberIDs := make(map[uint]struct{}, len(members))
	for _, q := range members {
		memberIDs[q.ID] = struct{}{}
	}

	upserts := make([]repository.AnswerUpsert, 0, len(inputs))
	for _, in := range inputs {
		if _, ok := memberIDs[in.QuestionID]; !ok {
			return nil, fmt.Errorf("question %d is not part of formulaire %d: %w", in.QuestionID, formulaireID, ErrInvalidInput)
		}
		upserts = append(upserts, repository.AnswerUpsert{QuestionID: in.QuestionID, Valeur: in.Valeur})
	}

	return s.answers.UpsertAnswers(ctx, formulaireID, clientID, upserts, s.clock.Now())
}

// MyAnswers returns the caller's own current answers for the formulaire.
// The client id always comes from the authenticated session; a client who
// never submitted gets an empty list, not an error.
func (s *SubmissionService) MyAnswers(ctx context.Context, formulaireID, clientID uint) ([]entity.ReponseClient, error) {
	formulaire, err := s.formulaires.FindByID(ctx, formulaireID)
	if err != nil {
		return nil, err
	}
	if formulaire == nil {
		return nil, ErrNotFound
	}
	return s.answers.FindAllByUserAndFormulaire(ctx, clientID, formulaireID)
}
