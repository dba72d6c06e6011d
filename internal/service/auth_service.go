package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"formflow/internal/entity"
	"formflow/internal/repository"
	"formflow/internal/utils"

	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

type AuthResult struct {
	Token     string
	ExpiresIn int64
	Role      entity.Role
	Email     string
	User      *entity.User
}

type AuthService struct {
	users        repository.UserRepository
	securityLogs repository.SecurityLogRepository

	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
}

func NewAuthService(
	users repository.UserRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
) *AuthService {
	return &AuthService{
		users:        users,
		securityLogs: securityLogs,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
	}
}

// Register creates a CLIENT account. Role escalation only happens through
// the admin user management endpoints.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" {
		return ErrInvalidInput
	}
	if len(input.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidInput)
	}
	if input.Password != input.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", ErrInvalidInput)
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyRegistered
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return err
	}

	user := &entity.User{
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleClient,
		Enabled:      true,
	}
	return s.users.Create(ctx, user)
}

// Authenticate collapses unknown email, wrong password and disabled
// account into one failure so callers cannot probe which accounts exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string, ipAddress *string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidInput
	}

	normalized := utils.NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Enabled {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		_ = s.logSecurity(ctx, nil, ipAddress, entity.LoginFailed, map[string]any{"email": normalized})
		return nil, ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, password) {
		_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginFailed, map[string]any{"email": normalized})
		return nil, ErrInvalidCredentials
	}

	token, ttl, err := s.accessTokens.IssueAccessToken(*user)
	if err != nil {
		return nil, err
	}

	_ = s.logSecurity(ctx, &user.ID, ipAddress, entity.LoginSuccess, nil)

	return &AuthResult{
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
		Role:      user.Role,
		Email:     user.Email,
		User:      user,
	}, nil
}

func (s *AuthService) GetCurrentUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) logSecurity(ctx context.Context, userID *uint, ipAddress *string, action entity.SecurityAction, metadata map[string]any) error {
	if s.securityLogs == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		data, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = data
	}
	return s.securityLogs.Log(ctx, &entity.SecurityLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}
