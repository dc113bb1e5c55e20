package models

import (
	"time"
)

const (
	DefaultShippingMethod = "Standard"
	DefaultPaymentMethod  = "Card"
)

// Order keeps a snapshot of the purchaser's contact data; it is not linked
// to the live profile.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	UserID         *uint       `json:"-" gorm:"index"`
	User           *User       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	FullName       string      `json:"full_name" gorm:"size:100;not null"`
	Email          string      `json:"email" gorm:"size:254;not null"`
	Address        string      `json:"address" gorm:"size:250;not null"`
	City           string      `json:"city" gorm:"size:100;not null"`
	ZipCode        string      `json:"zip_code" gorm:"size:20;not null"`
	TotalAmount    int64       `json:"total_amount" gorm:"not null"`
	Paid           bool        `json:"paid" gorm:"not null"`
	ShippingMethod string      `json:"shipping_method" gorm:"size:50;not null"`
	PaymentMethod  string      `json:"payment_method" gorm:"size:50;not null"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `json:"created_at" gorm:"index"`
}

// OrderItem stores the price at the time of ordering, decoupled from the
// current product price.
type OrderItem struct {
	ID        uint     `json:"-" gorm:"primaryKey"`
	OrderID   uint     `json:"-" gorm:"index;not null"`
	ProductID uint     `json:"product" gorm:"index;not null"`
	Product   *Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Price     int64    `json:"price" gorm:"not null"`
	Quantity  int      `json:"quantity" gorm:"not null"`
}
