package service

import (
	"context"
	"fmt"
	"strings"

	"formflow/internal/entity"
	"formflow/internal/repository"
	"formflow/internal/utils"
)

type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role
	Enabled   *bool
}

type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *entity.Role
	Enabled   *bool
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

// UserService covers admin user management and self-service profile edits.
type UserService struct {
	users        repository.UserRepository
	passwordHash PasswordHasher
}

func NewUserService(users repository.UserRepository, passwordHash PasswordHasher) *UserService {
	return &UserService{users: users, passwordHash: passwordHash}
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		return nil, fmt.Errorf("email is required: %w", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidInput)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entity.RoleClient
	}
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	user := &entity.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Enabled:      enabled,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *UserService) Update(ctx context.Context, id uint, input UpdateUserInput) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if err := s.applyEmailChange(ctx, user, *input.Email); err != nil {
			return nil, err
		}
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Enabled != nil {
		user.Enabled = *input.Enabled
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete refuses while formulaires or responses still reference the user.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	references, err := s.users.CountReferences(ctx, user.ID)
	if err != nil {
		return err
	}
	if references > 0 {
		return fmt.Errorf("user is referenced by formulaires or responses: %w", ErrConflict)
	}
	return s.users.Delete(ctx, user.ID)
}

func (s *UserService) SetPassword(ctx context.Context, id uint, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("passwords do not match: %w", ErrInvalidInput)
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		if err := s.applyEmailChange(ctx, user, *input.Email); err != nil {
			return nil, err
		}
	}
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		if len(*input.Password) < 6 {
			return nil, fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidInput)
		}
		hash, err := s.passwordHash.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) applyEmailChange(ctx context.Context, user *entity.User, newEmail string) error {
	email := utils.NormalizeEmail(newEmail)
	if email == "" || email == user.Email {
		return nil
	}
	other, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if other != nil && other.ID != user.ID {
		return fmt.Errorf("email already in use by another account: %w", ErrEmailAlreadyRegistered)
	}
	user.Email = email
	return nil
}
