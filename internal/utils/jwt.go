package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pceshop_back_end/internal/models"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 tokens with a single secret.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssuePair returns a fresh access and refresh token for user.
func (i *TokenIssuer) IssuePair(user *models.User) (access, refresh string, err error) {
	access, err = i.sign(user.ID, user.Username, AccessToken, i.accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = i.sign(user.ID, user.Username, RefreshToken, i.refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Refresh trades a valid refresh token for a new access token.
func (i *TokenIssuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.Parse(refreshToken, RefreshToken)
	if err != nil {
		return "", err
	}
	return i.sign(claims.UserID, claims.Username, AccessToken, i.accessTTL)
}

// Parse verifies signature, expiry and token type.
func (i *TokenIssuer) Parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("%w: expected %s", ErrWrongTokenType, tokenType)
	}
	return claims, nil
}

func (i *TokenIssuer) sign(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	now := i.now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}
