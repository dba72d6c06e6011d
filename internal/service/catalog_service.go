package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"formflow/internal/entity"
	"formflow/internal/repository"

	"gorm.io/gorm"
)

type QuestionInput struct {
	Contenu string
	Type    string
}

type FormulaireInput struct {
	Titre string
}

type QuestionPage struct {
	Items      []entity.Question
	TotalPages int
}

// CatalogService owns questions, formulaires and the membership between
// them.
type CatalogService struct {
	questions   repository.QuestionRepository
	formulaires repository.FormulaireRepository
}

func NewCatalogService(questions repository.QuestionRepository, formulaires repository.FormulaireRepository) *CatalogService {
	return &CatalogService{questions: questions, formulaires: formulaires}
}

func (s *CatalogService) CreateQuestion(ctx context.Context, input QuestionInput, ownerID uint) (*entity.Question, error) {
	if strings.TrimSpace(input.Contenu) == "" {
		return nil, fmt.Errorf("contenu is required: %w", ErrInvalidInput)
	}
	question := &entity.Question{
		Contenu: strings.TrimSpace(input.Contenu),
		Type:    strings.TrimSpace(input.Type),
		OwnerID: &ownerID,
	}
	if err := s.questions.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *CatalogService) GetQuestion(ctx context.Context, id uint) (*entity.Question, error) {
	question, err := s.questions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, ErrNotFound
	}
	return question, nil
}

func (s *CatalogService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	return s.questions.List(ctx)
}

func (s *CatalogService) UpdateQuestion(ctx context.Context, id uint, input QuestionInput) (*entity.Question, error) {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Contenu) == "" {
		return nil, fmt.Errorf("contenu is required: %w", ErrInvalidInput)
	}
	question.Contenu = strings.TrimSpace(input.Contenu)
	question.Type = strings.TrimSpace(input.Type)
	if err := s.questions.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion refuses while a membership or an answer still references
// the question; it must be unassigned everywhere first.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id uint) error {
	question, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	references, err := s.questions.CountReferences(ctx, question.ID)
	if err != nil {
		return err
	}
	if references > 0 {
		return fmt.Errorf("question is assigned to a formulaire or answered: %w", ErrConflict)
	}
	return s.questions.Delete(ctx, question.ID)
}

// SearchQuestions filters and paginates. Pages are 0-based; an empty
// filter matches everything.
func (s *CatalogService) SearchQuestions(ctx context.Context, filter repository.QuestionSearchFilter, page, size int) (*QuestionPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	items, total, err := s.questions.Search(ctx, filter, page, size)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &QuestionPage{Items: items, TotalPages: totalPages}, nil
}

func (s *CatalogService) CreateFormulaire(ctx context.Context, input FormulaireInput, ownerID uint) (*entity.Formulaire, error) {
	if strings.TrimSpace(input.Titre) == "" {
		return nil, fmt.Errorf("titre is required: %w", ErrInvalidInput)
	}
	formulaire := &entity.Formulaire{
		Titre:   strings.TrimSpace(input.Titre),
		OwnerID: ownerID,
	}
	if err := s.formulaires.Create(ctx, formulaire); err != nil {
		return nil, err
	}
	return formulaire, nil
}

func (s *CatalogService) GetFormulaire(ctx context.Context, id uint) (*entity.Formulaire, error) {
	formulaire, err := s.formulaires.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if formulaire == nil {
		return nil, ErrNotFound
	}
	return formulaire, nil
}

func (s *CatalogService) ListFormulaires(ctx context.Context) ([]entity.Formulaire, error) {
	return s.formulaires.List(ctx)
}

func (s *CatalogService) UpdateFormulaire(ctx context.Context, id uint, input FormulaireInput) (*entity.Formulaire, error) {
	formulaire, err := s.GetFormulaire(ctx, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Titre) == "" {
		return nil, fmt.Errorf("titre is required: %w", ErrInvalidInput)
	}
	formulaire.Titre = strings.TrimSpace(input.Titre)
	if err := s.formulaires.Update(ctx, formulaire); err != nil {
		return nil, err
	}
	return formulaire, nil
}

func (s *CatalogService) DeleteFormulaire(ctx context.Context, id uint) error {
	err := s.formulaires.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *CatalogService) GetMembership(ctx context.Context, formulaireID uint) ([]entity.Question, error) {
	questions, err := s.formulaires.GetMembership(ctx, formulaireID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return questions, err
}

func (s *CatalogService) ReplaceMembership(ctx context.Context, formulaireID uint, questionIDs []uint) ([]entity.Question, error) {
	err := s.formulaires.ReplaceMembership(ctx, formulaireID, questionIDs)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.formulaires.GetMembership(ctx, formulaireID)
}
