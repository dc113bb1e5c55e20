// Package admin serves the staff-only order and audit endpoints.
package admin

import (
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/services"
)

type Handler struct {
	orders *repository.OrderRepository
	ledger *services.Ledger
	mailer *services.Mailer
}

func NewHandler(orders *repository.OrderRepository, ledger *services.Ledger, mailer *services.Mailer) *Handler {
	return &Handler{orders: orders, ledger: ledger, mailer: mailer}
}
