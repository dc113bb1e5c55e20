package models

// Category is a catalog node. Only one level of nesting is used by the
// product filters: a category and its direct children.
type Category struct {
	ID       uint       `json:"id" gorm:"primaryKey"`
	Name     string     `json:"name" gorm:"size:100;not null"`
	Slug     string     `json:"slug" gorm:"size:100;uniqueIndex;not null"`
	ParentID *uint      `json:"parent_id" gorm:"index"`
	Children []Category `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}
