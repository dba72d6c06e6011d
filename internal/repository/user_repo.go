package repository

import (
	"context"
	"errors"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	CountReferences(ctx context.Context, id uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.User{}, id).Error
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountReferences reports how many formulaires and responses still point at
// the user. Deletion is refused while the count is non-zero.
func (r *userRepository) CountReferences(ctx context.Context, id uint) (int64, error) {
	var total int64

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Formulaire{}).Where("owner_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	if err := r.db.WithContext(ctx).Model(&entity.ReponseClient{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	if err := r.db.WithContext(ctx).Model(&entity.ReponseFournisseur{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
		return 0, err
	}
	total += count

	return total, nil
}
