package repository

import (
	"context"
	"errors"
	"fmt"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type FormulaireRepository interface {
	Create(ctx context.Context, formulaire *entity.Formulaire) error
	FindByID(ctx context.Context, id uint) (*entity.Formulaire, error)
	List(ctx context.Context) ([]entity.Formulaire, error)
	Update(ctx context.Context, formulaire *entity.Formulaire) error
	Delete(ctx context.Context, id uint) error
	GetMembership(ctx context.Context, formulaireID uint) ([]entity.Question, error)
	ReplaceMembership(ctx context.Context, formulaireID uint, questionIDs []uint) error
}

type formulaireRepository struct {
	db *gorm.DB
}

func NewFormulaireRepository(db *gorm.DB) FormulaireRepository {
	return &formulaireRepository{db: db}
}

func (r *formulaireRepository) Create(ctx context.Context, formulaire *entity.Formulaire) error {
	return r.db.WithContext(ctx).Create(formulaire).Error
}

func (r *formulaireRepository) FindByID(ctx context.Context, id uint) (*entity.Formulaire, error) {
	var formulaire entity.Formulaire
	err := r.db.WithContext(ctx).Preload("Owner").First(&formulaire, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &formulaire, err
}

func (r *formulaireRepository) List(ctx context.Context) ([]entity.Formulaire, error) {
	var formulaires []entity.Formulaire
	err := r.db.WithContext(ctx).Preload("Owner").Order("id").Find(&formulaires).Error
	return formulaires, err
}

func (r *formulaireRepository) Update(ctx context.Context, formulaire *entity.Formulaire) error {
	return r.db.WithContext(ctx).Save(formulaire).Error
}

// Delete removes the formulaire together with its membership rows, the
// client answers submitted against it and any fournisseur comments on
// those answers, in one transaction.
func (r *formulaireRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var formulaire entity.Formulaire
		if err := tx.First(&formulaire, id).Error; err != nil {
			return err
		}

		var answerIDs []uint
		if err := tx.Model(&entity.ReponseClient{}).
			Where("formulaire_id = ?", id).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("reponse_client_id IN ?", answerIDs).
				Delete(&entity.ReponseFournisseur{}).Error; err != nil {
				return err
			}
			if err := tx.Where("formulaire_id = ?", id).
				Delete(&entity.ReponseClient{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&formulaire).Association("Questions").Clear(); err != nil {
			return err
		}
		return tx.Delete(&formulaire).Error
	})
}

// GetMembership returns the member questions in a stable order.
func (r *formulaireRepository) GetMembership(ctx context.Context, formulaireID uint) ([]entity.Question, error) {
	var formulaire entity.Formulaire
	if err := r.db.WithContext(ctx).First(&formulaire, formulaireID).Error; err != nil {
		return nil, err
	}

	var questions []entity.Question
	err := r.db.WithContext(ctx).
		Joins("JOIN formulaire_questions fq ON fq.question_id = questions.id").
		Where("fq.formulaire_id = ?", formulaireID).
		Order("questions.id").
		Find(&questions).Error
	return questions, err
}

// ReplaceMembership swaps the full question set of a formulaire. The new
// set is deduplicated; a missing formulaire or question id fails the whole
// call and no partial membership is ever visible.
func (r *formulaireRepository) ReplaceMembership(ctx context.Context, formulaireID uint, questionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var formulaire entity.Formulaire
		if err := tx.First(&formulaire, formulaireID).Error; err != nil {
			return err
		}

		seen := make(map[uint]struct{}, len(questionIDs))
		unique := make([]uint, 0, len(questionIDs))
		for _, id := range questionIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			unique = append(unique, id)
		}

		if len(unique) == 0 {
			return tx.Model(&formulaire).Association("Questions").Clear()
		}

		var questions []entity.Question
		if err := tx.Where("id IN ?", unique).Find(&questions).Error; err != nil {
			return err
		}
		if len(questions) != len(unique) {
			found := make(map[uint]struct{}, len(questions))
			for _, q := range questions {
				found[q.ID] = struct{}{}
			}
			var missing []uint
			for _, id := range unique {
				if _, ok := found[id]; !ok {
					missing = append(missing, id)
				}
			}
			return fmt.Errorf("question ids %v: %w", missing, gorm.ErrRecordNotFound)
		}

		return tx.Model(&formulaire).Association("Questions").Replace(questions)
	})
}
