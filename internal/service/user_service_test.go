package service

import (
	"context"
	"errors"
	"testing"

	"formflow/internal/entity"
	"formflow/internal/repository"

	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewUserService(repository.NewUserRepository(db), BcryptPasswordHasher{Cost: 4}), db
}

func TestUserCreateDefaultsToClient(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "New.User@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != entity.RoleClient {
		t.Fatalf("expected default CLIENT role, got %s", user.Role)
	}
	if user.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if !user.Enabled {
		t.Fatal("expected the account to be enabled")
	}
}

func TestUserCreateWithRole(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "reviewer@example.com",
		Password: "secret1",
		Role:     entity.RoleFournisseur,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Role != entity.RoleFournisseur {
		t.Fatalf("expected FOURNISSEUR, got %s", user.Role)
	}
}

func TestUserUpdateChangesRoleAndEnabled(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Email: "u@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role := entity.RoleFournisseur
	disabled := false
	updated, err := svc.Update(ctx, user.ID, UpdateUserInput{Role: &role, Enabled: &disabled})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Role != entity.RoleFournisseur || updated.Enabled {
		t.Fatalf("expected disabled FOURNISSEUR, got %s enabled=%v", updated.Role, updated.Enabled)
	}
}

func TestUserUpdateRejectsTakenEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Email: "taken@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, CreateUserInput{Email: "second@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	taken := "taken@example.com"
	if _, err := svc.Update(ctx, second.ID, UpdateUserInput{Email: &taken}); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestUserDeleteRefusedWhileReferenced(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Email: "owner@example.com", Password: "secret1", Role: entity.RoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Create(&entity.Formulaire{Titre: "Dossier", OwnerID: user.ID}).Error; err != nil {
		t.Fatalf("seed formulaire: %v", err)
	}

	if err := svc.Delete(ctx, user.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict while referenced, got %v", err)
	}

	free, err := svc.Create(ctx, CreateUserInput{Email: "free@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("create free: %v", err)
	}
	if err := svc.Delete(ctx, free.ID); err != nil {
		t.Fatalf("delete unreferenced: %v", err)
	}
	if _, err := svc.GetByID(ctx, free.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSetPasswordValidation(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Email: "u@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.SetPassword(ctx, user.ID, "abc", "abc"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if err := svc.SetPassword(ctx, user.ID, "longenough", "different"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for mismatch, got %v", err)
	}
	if err := svc.SetPassword(ctx, user.ID, "longenough", "longenough"); err != nil {
		t.Fatalf("set password: %v", err)
	}
}

func TestEnsureDefaultUsersIsIdempotent(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	if err := svc.EnsureDefaultUsers(ctx); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := svc.EnsureDefaultUsers(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 bootstrap accounts, got %d", count)
	}
}
