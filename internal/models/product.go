package models

import (
	"time"
)

type Product struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CategoryID    *uint         `json:"category" gorm:"index"`
	Category      *Category     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	Name          string        `json:"name" gorm:"size:200;not null"`
	Slug          string        `json:"slug" gorm:"size:200;uniqueIndex;not null"`
	Description   string        `json:"description" gorm:"type:text"`
	Price         int64         `json:"price" gorm:"not null"`
	Image         string        `json:"image" gorm:"size:255"`
	Stock         int           `json:"stock" gorm:"not null"`
	IsAvailable   bool          `json:"is_available" gorm:"not null;index"`
	Brand         string        `json:"brand" gorm:"size:50"`
	Specification Specification `json:"specification" gorm:"type:json;serializer:json"`
	CreatedAt     time.Time     `json:"created_at" gorm:"index"`
}
