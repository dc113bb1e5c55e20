package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pceshop_back_end/internal/models"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreate returns the user's cart with its items and their products.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Cart, error) {
	cart, err := r.cart(ctx, r.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product").
		First(cart, cart.ID).Error
	return cart, err
}

// AddItem adds quantity units of a product, incrementing the existing line
// when the product is already in the cart.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.Cart, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}

		cart, err := r.cart(ctx, tx, userID)
		if err != nil {
			return err
		}

		item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
			}),
		}).Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrCreate(ctx, userID)
}

// RemoveItem drops the product line; removing an absent product is a no-op.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uint) (*models.Cart, error) {
	cart, err := r.cart(ctx, r.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return r.GetOrCreate(ctx, userID)
}

func (r *CartRepository) cart(ctx context.Context, db *gorm.DB, userID uint) (*models.Cart, error) {
	cart := models.Cart{UserID: userID}
	if err := db.WithContext(ctx).Where("user_id = ?", userID).FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}
