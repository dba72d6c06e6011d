package repository

import (
	"context"
	"errors"
	"strings"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type QuestionSearchFilter struct {
	Type string
	Text string
}

type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	FindByID(ctx context.Context, id uint) (*entity.Question, error)
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Question, error)
	List(ctx context.Context) ([]entity.Question, error)
	Update(ctx context.Context, question *entity.Question) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, filter QuestionSearchFilter, page, size int) ([]entity.Question, int64, error)
	CountReferences(ctx context.Context, id uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &question, err
}

func (r *questionRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Question, error) {
	var questions []entity.Question
	if len(ids) == 0 {
		return questions, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *questionRepository) List(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Question{}, id).Error
}

// Search filters by exact type and case-insensitive substring of the
// content, newest first. Pages are 0-based.
func (r *questionRepository) Search(ctx context.Context, filter QuestionSearchFilter, page, size int) ([]entity.Question, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Question{})

	if strings.TrimSpace(filter.Type) != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if text := strings.TrimSpace(filter.Text); text != "" {
		query = query.Where("LOWER(contenu) LIKE ?", "%"+strings.ToLower(text)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []entity.Question
	err := query.
		Order("id DESC").
		Limit(size).
		Offset(page * size).
		Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// CountReferences reports memberships and answers still pointing at the
// question.
func (r *questionRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var total int64

	var count int64
	err := r.db.WithContext(ctx).
		Table("formulaire_questions").
		Where("question_id = ?", id).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	total += count

	if err := r.db.WithContext(ctx).Model(&entity.ReponseClient{}).Where("question_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	return total, nil
}
