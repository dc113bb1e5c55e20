package services

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"pceshop_back_end/internal/models"
)

// CardBrand is the only brand the shop records.
const CardBrand = "Visa"

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

type cardStore interface {
	Create(ctx context.Context, card *models.SavedCard) error
	ListByUser(ctx context.Context, userID uint) ([]models.SavedCard, error)
}

type CardService struct {
	cards cardStore
	vault *CardVault
}

func NewCardService(cards cardStore, vault *CardVault) *CardService {
	return &CardService{cards: cards, vault: vault}
}

// Save validates and encrypts the card number; only the last four digits are
// kept in clear.
func (s *CardService) Save(ctx context.Context, userID uint, number, expiry string) (*models.SavedCard, error) {
	number = stripSpaces(number)
	if len(number) < 12 || !allDigits(number) {
		return nil, invalid("card_number", "card number must contain at least 12 digits")
	}
	if !expiryPattern.MatchString(expiry) {
		return nil, invalid("expiry", "expiry must be in MM/YY format")
	}

	encrypted, err := s.vault.Encrypt(number)
	if err != nil {
		return nil, err
	}

	card := &models.SavedCard{
		UserID:          userID,
		EncryptedNumber: encrypted,
		Last4:           number[len(number)-4:],
		Brand:           CardBrand,
		Expiry:          expiry,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CardService) List(ctx context.Context, userID uint) ([]models.SavedCard, error) {
	return s.cards.ListByUser(ctx, userID)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
