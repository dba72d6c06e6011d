package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formflow/internal/entity"

	"gorm.io/gorm"
)

type CommentUpsert struct {
	ReponseClientID uint
	Commentaire     string
}

type ReponseFournisseurRepository interface {
	FindByReponseClientIDs(ctx context.Context, ids []uint) (map[uint]entity.ReponseFournisseur, error)
	UpsertBatch(ctx context.Context, reviewerID uint, items []CommentUpsert, respondedAt time.Time) (int, error)
}

type reponseFournisseurRepository struct {
	db *gorm.DB
}

func NewReponseFournisseurRepository(db *gorm.DB) ReponseFournisseurRepository {
	return &reponseFournisseurRepository{db: db}
}

func (r *reponseFournisseurRepository) FindByReponseClientIDs(ctx context.Context, ids []uint) (map[uint]entity.ReponseFournisseur, error) {
	byAnswer := make(map[uint]entity.ReponseFournisseur, len(ids))
	if len(ids) == 0 {
		return byAnswer, nil
	}
	var comments []entity.ReponseFournisseur
	err := r.db.WithContext(ctx).
		Where("reponse_client_id IN ?", ids).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		byAnswer[c.ReponseClientID] = c
	}
	return byAnswer, nil
}

// UpsertBatch creates or overwrites one comment per referenced answer. The
// whole batch is written in one transaction; a single unknown answer id
// rolls everything back. Each write records the acting reviewer and a
// fresh timestamp even when the comment text is unchanged.
func (r *reponseFournisseurRepository) UpsertBatch(ctx context.Context, reviewerID uint, items []CommentUpsert, respondedAt time.Time) (int, error) {
	accepted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var answer entity.ReponseClient
			if err := tx.First(&answer, item.ReponseClientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("reponse client %d: %w", item.ReponseClientID, gorm.ErrRecordNotFound)
				}
				return err
			}

			var existing entity.ReponseFournisseur
			err := tx.Where("reponse_client_id = ?", item.ReponseClientID).First(&existing).Error
			switch {
			case err == nil:
				existing.Commentaire = item.Commentaire
				existing.UserID = reviewerID
				existing.DateReponse = respondedAt
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				fresh := entity.ReponseFournisseur{
					ReponseClientID: item.ReponseClientID,
					UserID:          reviewerID,
					Commentaire:     item.Commentaire,
					DateReponse:     respondedAt,
				}
				if err := tx.Create(&fresh).Error; err != nil {
					return err
				}
			default:
				return err
			}
			accepted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return accepted, nil
}
