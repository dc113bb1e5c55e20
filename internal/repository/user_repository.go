package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pceshop_back_end/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new account. Usernames are unique; emails are unique
// case-insensitively.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	if user.Email != "" {
		if err := db.Model(&models.User{}).Where("LOWER(email) = ?", strings.ToLower(user.Email)).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
	}

	if err := db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Groups").First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// SetStaff toggles the staff flag of an account.
func (r *UserRepository) SetStaff(ctx context.Context, id uint, staff bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_staff", staff)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddToGroup puts the user in the named group, creating the group if needed.
func (r *UserRepository) AddToGroup(ctx context.Context, userID uint, groupName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}
		group := models.Group{Name: groupName}
		if err := tx.Where("name = ?", groupName).FirstOrCreate(&group).Error; err != nil {
			return err
		}
		return tx.Model(&user).Association("Groups").Append(&group)
	})
}

// GetOrCreateProfile returns the profile of userID, creating an empty one on
// first access.
func (r *UserRepository) GetOrCreateProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	profile := models.UserProfile{UserID: userID}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).FirstOrCreate(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, profile *models.UserProfile) error {
	return r.db.WithContext(ctx).Omit("User").Save(profile).Error
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
