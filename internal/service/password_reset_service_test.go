package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"formflow/internal/entity"
	"formflow/internal/repository"
)

type resetTestEnv struct {
	svc    *PasswordResetService
	users  repository.UserRepository
	emails *captureEmailSender
	hasher BcryptPasswordHasher
}

func newResetEnv(t *testing.T, codeTTL time.Duration) resetTestEnv {
	t.Helper()
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	codes := repository.NewResetCodeRepository(db)
	logs := repository.NewSecurityLogRepository(db)
	emails := &captureEmailSender{}
	hasher := BcryptPasswordHasher{Cost: 4}
	svc := NewPasswordResetService(users, codes, logs, emails, hasher, RealClock{}, codeTTL)
	return resetTestEnv{svc: svc, users: users, emails: emails, hasher: hasher}
}

func (env resetTestEnv) seedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()
	hash, err := env.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &entity.User{Email: email, PasswordHash: hash, Role: entity.RoleClient, Enabled: true}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestPasswordResetFlow(t *testing.T) {
	env := newResetEnv(t, 15*time.Minute)
	ctx := context.Background()
	env.seedUser(t, "client@example.com", "oldpassword")

	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := env.emails.lastCode(t)
	if len(code) != 6 {
		t.Fatalf("expected a six digit code, got %q", code)
	}

	if err := env.svc.VerifyCode(ctx, "client@example.com", code); err != nil {
		t.Fatalf("verify code: %v", err)
	}
	if err := env.svc.ResetPassword(ctx, "client@example.com", code, "newpassword", "newpassword"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	user, err := env.users.FindByEmail(ctx, "client@example.com")
	if err != nil || user == nil {
		t.Fatalf("lookup: %v", err)
	}
	if !env.hasher.Verify(user.PasswordHash, "newpassword") {
		t.Fatal("expected the new password to verify")
	}
	if env.hasher.Verify(user.PasswordHash, "oldpassword") {
		t.Fatal("expected the old password to stop working")
	}
}

func TestRequestResetUnknownEmailIsSilent(t *testing.T) {
	env := newResetEnv(t, 15*time.Minute)

	if err := env.svc.RequestReset(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("expected silent success for unknown email, got %v", err)
	}
	if len(env.emails.codes) != 0 {
		t.Fatalf("expected no email for unknown account, got %d", len(env.emails.codes))
	}
}

func TestVerifyCodeRejectsWrongCode(t *testing.T) {
	env := newResetEnv(t, 15*time.Minute)
	ctx := context.Background()
	env.seedUser(t, "client@example.com", "oldpassword")

	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := env.emails.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if err := env.svc.VerifyCode(ctx, "client@example.com", wrong); !errors.Is(err, ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode for wrong code, got %v", err)
	}
	if err := env.svc.VerifyCode(ctx, "other@example.com", code); !errors.Is(err, ErrInvalidResetCode) {
		t.Fatalf("expected ErrInvalidResetCode for wrong email, got %v", err)
	}
}

func TestVerifyCodeRejectsExpiredCode(t *testing.T) {
	env := newResetEnv(t, -time.Minute)
	ctx := context.Background()
	env.seedUser(t, "client@example.com", "oldpassword")

	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := env.emails.lastCode(t)

	if err := env.svc.VerifyCode(ctx, "client@example.com", code); !errors.Is(err, ErrInvalidResetCode) {
		t.Fatalf("expected expired code to be rejected, got %v", err)
	}
}

func TestResetCodeIsSingleUse(t *testing.T) {
	env := newResetEnv(t, 15*time.Minute)
	ctx := context.Background()
	env.seedUser(t, "client@example.com", "oldpassword")

	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := env.emails.lastCode(t)

	if err := env.svc.ResetPassword(ctx, "client@example.com", code, "newpassword", "newpassword"); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	err := env.svc.ResetPassword(ctx, "client@example.com", code, "anotherpass", "anotherpass")
	if !errors.Is(err, ErrInvalidResetCode) {
		t.Fatalf("expected a consumed code to be rejected, got %v", err)
	}
}

func TestRequestResetInvalidatesPriorCode(t *testing.T) {
	env := newResetEnv(t, 15*time.Minute)
	ctx := context.Background()
	env.seedUser(t, "client@example.com", "oldpassword")

	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := env.emails.lastCode(t)
	if err := env.svc.RequestReset(ctx, "client@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	second := env.emails.lastCode(t)

	if first != second {
		if err := env.svc.VerifyCode(ctx, "client@example.com", first); !errors.Is(err, ErrInvalidResetCode) {
			t.Fatalf("expected superseded code to be rejected, got %v", err)
		}
	}
	if err := env.svc.VerifyCode(ctx, "client@example.com", second); err != nil {
		t.Fatalf("expected latest code to verify, got %v", err)
	}
}
