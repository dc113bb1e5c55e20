package models

import "time"

// EmployeeGroup grants access to the manager endpoints without the staff flag.
const EmployeeGroup = "Employee"

type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email      string    `json:"email" gorm:"size:254;index"`
	Password   string    `json:"-" gorm:"size:255;not null"`
	IsStaff    bool      `json:"-" gorm:"not null"`
	IsActive   bool      `json:"-" gorm:"not null"`
	Groups     []Group   `json:"-" gorm:"many2many:user_groups;constraint:OnDelete:CASCADE"`
	DateJoined time.Time `json:"-" gorm:"autoCreateTime"`
}

type Group struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:150;uniqueIndex;not null"`
}

// IsEmployee reports whether u may use the manager endpoints.
func (u *User) IsEmployee() bool {
	if u == nil || !u.IsActive {
		return false
	}
	if u.IsStaff {
		return true
	}
	for _, g := range u.Groups {
		if g.Name == EmployeeGroup {
			return true
		}
	}
	return false
}

type UserProfile struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	UserID   uint   `json:"-" gorm:"uniqueIndex;not null"`
	User     *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FullName string `json:"full_name" gorm:"size:100"`
	Address  string `json:"address" gorm:"size:250"`
	City     string `json:"city" gorm:"size:100"`
	ZipCode  string `json:"zip_code" gorm:"size:20"`
	Phone    string `json:"phone" gorm:"size:20"`
}

// SavedCard never holds the plaintext number.
type SavedCard struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"-" gorm:"index;not null"`
	User            *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	EncryptedNumber string    `json:"-" gorm:"size:255;not null"`
	Last4           string    `json:"last_4" gorm:"size:4;not null"`
	Brand           string    `json:"brand" gorm:"size:20;not null"`
	Expiry          string    `json:"expiry" gorm:"size:5;not null"`
	CreatedAt       time.Time `json:"-"`
}
