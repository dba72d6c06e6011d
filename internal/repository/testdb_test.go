package repository

import (
	"fmt"
	"testing"

	"formflow/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&entity.User{},
		&entity.Question{},
		&entity.Formulaire{},
		&entity.ReponseClient{},
		&entity.ReponseFournisseur{},
		&entity.ResetCode{},
		&entity.SecurityLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Enabled:      true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedQuestion(t *testing.T, db *gorm.DB, contenu, qType string) *entity.Question {
	t.Helper()
	question := &entity.Question{Contenu: contenu, Type: qType}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("seed question %q: %v", contenu, err)
	}
	return question
}

func seedFormulaire(t *testing.T, db *gorm.DB, titre string, ownerID uint) *entity.Formulaire {
	t.Helper()
	formulaire := &entity.Formulaire{Titre: titre, OwnerID: ownerID}
	if err := db.Create(formulaire).Error; err != nil {
		t.Fatalf("seed formulaire %q: %v", titre, err)
	}
	return formulaire
}
