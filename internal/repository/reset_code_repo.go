package repository

import (
	"context"
	"errors"
	"time"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type ResetCodeRepository interface {
	Create(ctx context.Context, code *entity.ResetCode) error
	FindValid(ctx context.Context, userID uint, codeHash string) (*entity.ResetCode, error)
	MarkUsed(ctx context.Context, id uint) error
	InvalidateForUser(ctx context.Context, userID uint) error
}

type resetCodeRepository struct {
	db *gorm.DB
}

func NewResetCodeRepository(db *gorm.DB) ResetCodeRepository {
	return &resetCodeRepository{db: db}
}

func (r *resetCodeRepository) Create(ctx context.Context, code *entity.ResetCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *resetCodeRepository) FindValid(ctx context.Context, userID uint, codeHash string) (*entity.ResetCode, error) {
	var code entity.ResetCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code_hash = ? AND used_at IS NULL AND expires_at > ?", userID, codeHash, time.Now()).
		First(&code).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &code, err
}

func (r *resetCodeRepository) MarkUsed(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.ResetCode{}).
		Where("id = ?", id).
		Update("used_at", &now).
		Error
}

// InvalidateForUser expires any still-pending codes so only the most
// recently requested one can be consumed.
func (r *resetCodeRepository) InvalidateForUser(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entity.ResetCode{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", &now).
		Error
}
