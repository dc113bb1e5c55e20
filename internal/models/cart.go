package models

import "time"

type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"-" gorm:"uniqueIndex;not null"`
	User      *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"-"`
}

// CartItem is unique per (cart, product); adding the same product again
// increments Quantity.
type CartItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	CartID    uint     `json:"-" gorm:"uniqueIndex:idx_cart_product;not null"`
	ProductID uint     `json:"product_id" gorm:"uniqueIndex:idx_cart_product;not null"`
	Product   *Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int      `json:"quantity" gorm:"not null"`
}
