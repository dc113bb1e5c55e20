package repository

import (
	"context"

	"gorm.io/gorm"

	"pceshop_back_end/internal/models"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Create(ctx context.Context, card *models.SavedCard) error {
	return r.db.WithContext(ctx).Omit("User").Create(card).Error
}

// ListByUser returns the user's cards, oldest first.
func (r *CardRepository) ListByUser(ctx context.Context, userID uint) ([]models.SavedCard, error) {
	cards := []models.SavedCard{}
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&cards).Error
	return cards, err
}
