package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"formflow/internal/entity"
	"formflow/internal/repository"

	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCatalogService(repository.NewQuestionRepository(db), repository.NewFormulaireRepository(db))
	return svc, db
}

func seedAdmin(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	admin := &entity.User{Email: "admin@example.com", PasswordHash: "x", Role: entity.RoleAdmin, Enabled: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return admin
}

func TestQuestionLifecycle(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	admin := seedAdmin(t, db)

	question, err := svc.CreateQuestion(ctx, QuestionInput{Contenu: "  SIRET ?  ", Type: "text"}, admin.ID)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if question.Contenu != "SIRET ?" {
		t.Fatalf("expected trimmed contenu, got %q", question.Contenu)
	}

	updated, err := svc.UpdateQuestion(ctx, question.ID, QuestionInput{Contenu: "Numéro SIRET ?", Type: "text"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Contenu != "Numéro SIRET ?" {
		t.Fatalf("unexpected contenu %q", updated.Contenu)
	}

	if err := svc.DeleteQuestion(ctx, question.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetQuestion(ctx, question.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreateQuestionRequiresContenu(t *testing.T) {
	svc, db := newCatalogService(t)
	admin := seedAdmin(t, db)

	if _, err := svc.CreateQuestion(context.Background(), QuestionInput{Contenu: "   "}, admin.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteQuestionRefusedWhileAssigned(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	admin := seedAdmin(t, db)

	question, err := svc.CreateQuestion(ctx, QuestionInput{Contenu: "SIRET ?", Type: "text"}, admin.ID)
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	formulaire, err := svc.CreateFormulaire(ctx, FormulaireInput{Titre: "Dossier"}, admin.ID)
	if err != nil {
		t.Fatalf("create formulaire: %v", err)
	}
	if _, err := svc.ReplaceMembership(ctx, formulaire.ID, []uint{question.ID}); err != nil {
		t.Fatalf("replace membership: %v", err)
	}

	if err := svc.DeleteQuestion(ctx, question.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict while assigned, got %v", err)
	}

	// Unassigning frees the question for deletion.
	if _, err := svc.ReplaceMembership(ctx, formulaire.ID, nil); err != nil {
		t.Fatalf("clear membership: %v", err)
	}
	if err := svc.DeleteQuestion(ctx, question.ID); err != nil {
		t.Fatalf("delete after unassign: %v", err)
	}
}

func TestSearchQuestionsTotalPages(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	admin := seedAdmin(t, db)

	for i := 0; i < 7; i++ {
		if _, err := svc.CreateQuestion(ctx, QuestionInput{Contenu: fmt.Sprintf("Q%d ?", i), Type: "text"}, admin.ID); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	page, err := svc.SearchQuestions(ctx, repository.QuestionSearchFilter{}, 0, 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 pages for 7 items of size 3, got %d", page.TotalPages)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items on the first page, got %d", len(page.Items))
	}

	// Out-of-range values fall back to sane defaults.
	page, err = svc.SearchQuestions(ctx, repository.QuestionSearchFilter{}, -1, 0)
	if err != nil {
		t.Fatalf("search with defaults: %v", err)
	}
	if len(page.Items) != 7 {
		t.Fatalf("expected all 7 items with default size, got %d", len(page.Items))
	}
}

func TestReplaceMembershipUnknownQuestion(t *testing.T) {
	svc, db := newCatalogService(t)
	ctx := context.Background()
	admin := seedAdmin(t, db)

	formulaire, err := svc.CreateFormulaire(ctx, FormulaireInput{Titre: "Dossier"}, admin.ID)
	if err != nil {
		t.Fatalf("create formulaire: %v", err)
	}
	if _, err := svc.ReplaceMembership(ctx, formulaire.ID, []uint{9999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown question id, got %v", err)
	}
}

func TestDeleteFormulaireUnknown(t *testing.T) {
	svc, _ := newCatalogService(t)

	if err := svc.DeleteFormulaire(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
