package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

func membershipIDs(t *testing.T, repo FormulaireRepository, formulaireID uint) []uint {
	t.Helper()
	questions, err := repo.GetMembership(context.Background(), formulaireID)
	if err != nil {
		t.Fatalf("get membership: %v", err)
	}
	ids := make([]uint, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func TestReplaceMembershipFullReplace(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	formulaire := seedFormulaire(t, db, "Survey", owner.ID)
	q1 := seedQuestion(t, db, "Age?", "text")
	q2 := seedQuestion(t, db, "City?", "text")
	q3 := seedQuestion(t, db, "Job?", "text")

	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q1.ID, q2.ID}); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if got := membershipIDs(t, repo, formulaire.ID); len(got) != 2 {
		t.Fatalf("expected 2 members, got %v", got)
	}

	// Full replace semantics: the prior set is irrelevant.
	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q1.ID, q2.ID, q3.ID}); err != nil {
		t.Fatalf("second replace: %v", err)
	}
	got := membershipIDs(t, repo, formulaire.ID)
	if len(got) != 3 {
		t.Fatalf("expected 3 members, got %v", got)
	}

	if err := repo.ReplaceMembership(ctx, formulaire.ID, nil); err != nil {
		t.Fatalf("empty replace: %v", err)
	}
	if got := membershipIDs(t, repo, formulaire.ID); len(got) != 0 {
		t.Fatalf("expected empty membership, got %v", got)
	}
}

func TestReplaceMembershipDeduplicates(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	formulaire := seedFormulaire(t, db, "Survey", owner.ID)
	q1 := seedQuestion(t, db, "Age?", "text")

	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q1.ID, q1.ID, q1.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := membershipIDs(t, repo, formulaire.ID); len(got) != 1 {
		t.Fatalf("expected 1 member after dedup, got %v", got)
	}
}

func TestReplaceMembershipUnknownIDsAreAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	formulaire := seedFormulaire(t, db, "Survey", owner.ID)
	q1 := seedQuestion(t, db, "Age?", "text")
	q2 := seedQuestion(t, db, "City?", "text")

	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q1.ID}); err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q2.ID, 9999})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	// Prior membership must still be visible.
	got := membershipIDs(t, repo, formulaire.ID)
	if len(got) != 1 || got[0] != q1.ID {
		t.Fatalf("membership changed after failed replace: %v", got)
	}
}

func TestReplaceMembershipUnknownFormulaire(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)

	err := repo.ReplaceMembership(context.Background(), 42, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestGetMembershipStableOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	formulaire := seedFormulaire(t, db, "Survey", owner.ID)
	q1 := seedQuestion(t, db, "Age?", "text")
	q2 := seedQuestion(t, db, "City?", "text")

	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q2.ID, q1.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	first := membershipIDs(t, repo, formulaire.ID)
	second := membershipIDs(t, repo, formulaire.ID)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 members, got %v and %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order not stable across reads: %v vs %v", first, second)
		}
	}
}

func TestDeleteFormulaireCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormulaireRepository(db)
	answers := NewReponseClientRepository(db)
	comments := NewReponseFournisseurRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "admin@test.local", entity.RoleAdmin)
	client := seedUser(t, db, "client@test.local", entity.RoleClient)
	reviewer := seedUser(t, db, "fournisseur@test.local", entity.RoleFournisseur)
	formulaire := seedFormulaire(t, db, "Survey", owner.ID)
	q1 := seedQuestion(t, db, "Age?", "text")

	if err := repo.ReplaceMembership(ctx, formulaire.ID, []uint{q1.ID}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	saved, err := answers.UpsertAnswers(ctx, formulaire.ID, client.ID, []AnswerUpsert{{QuestionID: q1.ID, Valeur: "30"}}, time.Now())
	if err != nil {
		t.Fatalf("upsert answers: %v", err)
	}
	if _, err := comments.UpsertBatch(ctx, reviewer.ID, []CommentUpsert{{ReponseClientID: saved[0].ID, Commentaire: "ok"}}, time.Now()); err != nil {
		t.Fatalf("upsert comment: %v", err)
	}

	if err := repo.Delete(ctx, formulaire.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&entity.ReponseClient{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected answers deleted, %d remain", count)
	}
	db.Model(&entity.ReponseFournisseur{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected comments deleted, %d remain", count)
	}
	db.Table("formulaire_questions").Count(&count)
	if count != 0 {
		t.Fatalf("expected membership rows deleted, %d remain", count)
	}
	// The question itself survives.
	db.Model(&entity.Question{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected question to survive, got %d", count)
	}
}
