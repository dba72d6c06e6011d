package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"formflow/internal/entity"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

// captureEmailSender records the codes a reset flow would have mailed.
type captureEmailSender struct {
	mu    sync.Mutex
	codes []string
}

func (s *captureEmailSender) SendPasswordResetEmail(_ context.Context, _ string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = append(s.codes, code)
	return nil
}

func (s *captureEmailSender) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.codes) == 0 {
		t.Fatal("expected a reset email to have been sent")
	}
	return s.codes[len(s.codes)-1]
}
