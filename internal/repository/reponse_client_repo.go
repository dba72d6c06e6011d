package repository

import (
	"context"
	"errors"
	"time"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type AnswerUpsert struct {
	QuestionID uint
	Valeur     string
}

type ReponseClientRepository interface {
	FindByID(ctx context.Context, id uint) (*entity.ReponseClient, error)
	FindAllByFormulaire(ctx context.Context, formulaireID uint) ([]entity.ReponseClient, error)
	FindAllByUserAndFormulaire(ctx context.Context, userID, formulaireID uint) ([]entity.ReponseClient, error)
	UpsertAnswers(ctx context.Context, formulaireID, userID uint, answers []AnswerUpsert, submittedAt time.Time) ([]entity.ReponseClient, error)
}

type reponseClientRepository struct {
	db *gorm.DB
}

func NewReponseClientRepository(db *gorm.DB) ReponseClientRepository {
	return &reponseClientRepository{db: db}
}

func (r *reponseClientRepository) FindByID(ctx context.Context, id uint) (*entity.ReponseClient, error) {
	var answer entity.ReponseClient
	err := r.db.WithContext(ctx).First(&answer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &answer, err
}

func (r *reponseClientRepository) FindAllByFormulaire(ctx context.Context, formulaireID uint) ([]entity.ReponseClient, error) {
	var answers []entity.ReponseClient
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("User").
		Where("formulaire_id = ?", formulaireID).
		Order("id").
		Find(&answers).Error
	return answers, err
}

func (r *reponseClientRepository) FindAllByUserAndFormulaire(ctx context.Context, userID, formulaireID uint) ([]entity.ReponseClient, error) {
	var answers []entity.ReponseClient
	err := r.db.WithContext(ctx).
		Preload("Question").
		Preload("User").
		Where("user_id = ? AND formulaire_id = ?", userID, formulaireID).
		Order("id").
		Find(&answers).Error
	return answers, err
}

// UpsertAnswers writes each provided answer, overwriting the prior value
// and timestamp of the same (formulaire, client, question) triple. Answers
// not provided are left untouched.
func (r *reponseClientRepository) UpsertAnswers(ctx context.Context, formulaireID, userID uint, answers []AnswerUpsert, submittedAt time.Time) ([]entity.ReponseClient, error) {
	saved := make([]entity.ReponseClient, 0, len(answers))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range answers {
			var existing entity.ReponseClient
			err := tx.Where(
				"formulaire_id = ? AND user_id = ? AND question_id = ?",
				formulaireID, userID, a.QuestionID,
			).First(&existing).Error

			switch {
			case err == nil:
				existing.Valeur = a.Valeur
				existing.DateSoumission = submittedAt
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				saved = append(saved, existing)
			case errors.Is(err, gorm.ErrRecordNotFound):
				fresh := entity.ReponseClient{
					FormulaireID:   formulaireID,
					QuestionID:     a.QuestionID,
					UserID:         userID,
					Valeur:         a.Valeur,
					DateSoumission: submittedAt,
				}
				if err := tx.Create(&fresh).Error; err != nil {
					return err
				}
				saved = append(saved, fresh)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
