package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"formflow/internal/entity"
	"formflow/internal/repository"
	"formflow/internal/utils"
)

const defaultResetCodeTTL = 15 * time.Minute

// PasswordResetService drives the forgot-password flow: a six digit code
// is mailed to the account, verified, then exchanged for a new password.
type PasswordResetService struct {
	users        repository.UserRepository
	resetCodes   repository.ResetCodeRepository
	securityLogs repository.SecurityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	clock        Clock
	codeTTL      time.Duration
}

func NewPasswordResetService(
	users repository.UserRepository,
	resetCodes repository.ResetCodeRepository,
	securityLogs repository.SecurityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	clock Clock,
	codeTTL time.Duration,
) *PasswordResetService {
	if codeTTL == 0 {
		codeTTL = defaultResetCodeTTL
	}
	return &PasswordResetService{
		users:        users,
		resetCodes:   resetCodes,
		securityLogs: securityLogs,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		clock:        clock,
		codeTTL:      codeTTL,
	}
}

// RequestReset issues a fresh code for the account. Unknown emails are
// silently ignored; the HTTP layer answers with the same acknowledgement
// either way.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return err
	}
	if user == nil || !user.Enabled {
		return nil
	}

	code, err := utils.GenerateResetCode()
	if err != nil {
		return err
	}

	if err := s.resetCodes.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}
	if err := s.resetCodes.Create(ctx, &entity.ResetCode{
		UserID:    user.ID,
		CodeHash:  utils.HashToken(code),
		ExpiresAt: s.clock.Now().Add(s.codeTTL),
	}); err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendPasswordResetEmail(ctx, user.Email, code); err != nil {
			return err
		}
	}

	if s.securityLogs != nil {
		_ = s.securityLogs.Log(ctx, &entity.SecurityLog{
			UserID: &user.ID,
			Action: entity.ResetRequest,
		})
	}
	return nil
}

// VerifyCode checks that an unexpired, unused code matches the account.
func (s *PasswordResetService) VerifyCode(ctx context.Context, email, code string) error {
	_, _, err := s.findValidCode(ctx, email, code)
	return err
}

// ResetPassword consumes the code and installs the new password.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("passwords do not match: %w", ErrInvalidInput)
	}

	user, resetCode, err := s.findValidCode(ctx, email, code)
	if err != nil {
		return err
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.resetCodes.MarkUsed(ctx, resetCode.ID); err != nil {
		return err
	}

	if s.securityLogs != nil {
		_ = s.securityLogs.Log(ctx, &entity.SecurityLog{
			UserID: &user.ID,
			Action: entity.PasswordReset,
		})
	}
	return nil
}

func (s *PasswordResetService) findValidCode(ctx context.Context, email, code string) (*entity.User, *entity.ResetCode, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(code) == "" {
		return nil, nil, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidResetCode
	}

	resetCode, err := s.resetCodes.FindValid(ctx, user.ID, utils.HashToken(code))
	if err != nil {
		return nil, nil, err
	}
	if resetCode == nil {
		return nil, nil, ErrInvalidResetCode
	}
	return user, resetCode, nil
}
