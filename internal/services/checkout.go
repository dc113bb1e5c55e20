package services

import (
	"context"
	"errors"
	"log"
	"net/mail"
	"strings"
	"time"

	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
)

type orderStore interface {
	Create(ctx context.Context, order *models.Order, lines []repository.OrderLine) ([]models.StockMovement, error)
}

type stockRecorder interface {
	RecordMovements(ctx context.Context, movements []models.StockMovement) error
}

type orderNotifier interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

// CheckoutRequest is a validated-by-PlaceOrder order submission.
type CheckoutRequest struct {
	UserID         *uint
	FullName       string
	Email          string
	Address        string
	City           string
	ZipCode        string
	ShippingMethod string
	PaymentMethod  string
	Items          []repository.OrderLine
}

type CheckoutService struct {
	orders   orderStore
	ledger   stockRecorder
	notifier orderNotifier

	// dispatch runs post-commit work that must not delay the response.
	dispatch func(func())
}

func NewCheckoutService(orders orderStore, ledger *Ledger, mailer *Mailer) *CheckoutService {
	s := &CheckoutService{
		orders:   orders,
		dispatch: func(f func()) { go f() },
	}
	// Keep interface fields nil when the backend is disabled.
	if ledger != nil {
		s.ledger = ledger
	}
	if mailer != nil {
		s.notifier = mailer
	}
	return s
}

// PlaceOrder validates req and creates the order atomically. Stock shortages
// and unknown products are reported as *ValidationError and leave nothing
// behind. Ledger and mail failures are logged only.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req CheckoutRequest) (*models.Order, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:         req.UserID,
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Address:        strings.TrimSpace(req.Address),
		City:           strings.TrimSpace(req.City),
		ZipCode:        strings.TrimSpace(req.ZipCode),
		ShippingMethod: orDefault(req.ShippingMethod, models.DefaultShippingMethod),
		PaymentMethod:  orDefault(req.PaymentMethod, models.DefaultPaymentMethod),
	}

	movements, err := s.orders.Create(ctx, order, req.Items)
	if err != nil {
		var stockErr *repository.StockError
		switch {
		case errors.As(err, &stockErr):
			return nil, &ValidationError{Field: "items", Message: stockErr.Error()}
		case errors.Is(err, repository.ErrNotFound):
			return nil, invalid("items", "unknown product in order")
		}
		return nil, err
	}
	log.Printf("✅ Order %d created (%d items, total %d)", order.ID, len(order.Items), order.TotalAmount)

	if s.ledger != nil {
		if err := s.ledger.RecordMovements(ctx, movements); err != nil {
			log.Printf("⚠️ Stock ledger write for order %d failed: %v", order.ID, err)
		}
	}
	if s.notifier != nil {
		snapshot := *order
		s.dispatch(func() {
			mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
			defer cancel()
			if err := s.notifier.SendOrderConfirmation(mailCtx, &snapshot); err != nil {
				log.Printf("⚠️ Confirmation mail for order %d failed: %v", snapshot.ID, err)
			}
		})
	}
	return order, nil
}

func validateCheckout(req CheckoutRequest) error {
	required := []struct{ field, value string }{
		{"full_name", req.FullName},
		{"email", req.Email},
		{"address", req.Address},
		{"city", req.City},
		{"zip_code", req.ZipCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return invalid(r.field, "this field is required")
		}
	}
	if addr, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil || addr.Address != strings.TrimSpace(req.Email) {
		return invalid("email", "enter a valid email address")
	}
	if len(req.Items) == 0 {
		return invalid("items", "order must contain at least one item")
	}
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return invalid("items", "quantity must be at least 1")
		}
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
