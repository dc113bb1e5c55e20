package user

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/models"
)

var (
	zipPattern   = regexp.MustCompile(`^\d{5}$`)
	phonePattern = regexp.MustCompile(`^\+?\d{9,15}$`)
)

type profileView struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zip_code"`
	Phone    string `json:"phone"`
}

// Fields left out of the body keep their value, for PUT as for PATCH.
type profileInput struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Address  *string `json:"address" binding:"omitempty,max=250"`
	City     *string `json:"city" binding:"omitempty,max=100"`
	ZipCode  *string `json:"zip_code"`
	Phone    *string `json:"phone"`
}

// 🔵 GET /api/profile
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	h.respondProfile(c, uid, nil)
}

// 🟢 PUT|PATCH /api/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var input profileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	if input.ZipCode != nil {
		zip := strings.ReplaceAll(*input.ZipCode, " ", "")
		if zip != "" && !zipPattern.MatchString(zip) {
			handlers.Error(c, http.StatusBadRequest, "zip_code: must be 5 digits")
			return
		}
		input.ZipCode = &zip
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone != "" && !phonePattern.MatchString(phone) {
			handlers.Error(c, http.StatusBadRequest, "phone: enter a valid phone number")
			return
		}
		input.Phone = &phone
	}

	h.respondProfile(c, uid, &input)
}

// respondProfile loads the profile, applies input when given, and writes
// the profile view.
func (h *Handler) respondProfile(c *gin.Context, uid uint, input *profileInput) {
	ctx := c.Request.Context()

	user, err := h.users.GetByID(ctx, uid)
	if err != nil {
		handlers.ServerError(c, "Loading user", err)
		return
	}
	profile, err := h.users.GetOrCreateProfile(ctx, uid)
	if err != nil {
		handlers.ServerError(c, "Loading profile", err)
		return
	}

	if input != nil {
		assign(&profile.FullName, input.FullName)
		assign(&profile.Address, input.Address)
		assign(&profile.City, input.City)
		assign(&profile.ZipCode, input.ZipCode)
		assign(&profile.Phone, input.Phone)
		if err := h.users.UpdateProfile(ctx, profile); err != nil {
			handlers.ServerError(c, "Saving profile", err)
			return
		}
	}

	c.JSON(http.StatusOK, newProfileView(user, profile))
}

func assign(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func newProfileView(user *models.User, p *models.UserProfile) profileView {
	return profileView{
		FullName: p.FullName,
		Email:    user.Email,
		Address:  p.Address,
		City:     p.City,
		ZipCode:  p.ZipCode,
		Phone:    p.Phone,
	}
}
