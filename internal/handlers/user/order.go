package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/handlers"
	"pceshop_back_end/internal/middleware"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/services"
)

type orderItemInput struct {
	Product  uint `json:"product"`
	Quantity int  `json:"quantity"`
	// Price is accepted for compatibility and ignored; the current
	// product price is charged.
	Price json.RawMessage `json:"price"`
}

type orderInput struct {
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Address        string           `json:"address"`
	City           string           `json:"city"`
	ZipCode        string           `json:"zip_code"`
	ShippingMethod string           `json:"shipping_method"`
	PaymentMethod  string           `json:"payment_method"`
	Items          []orderItemInput `json:"items"`
}

// 🟢 POST /api/orders
//
// Authentication is optional; an authenticated caller becomes the owner.
func (h *Handler) CreateOrder(c *gin.Context) {
	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		handlers.BindError(c, err)
		return
	}

	req := services.CheckoutRequest{
		FullName:       input.FullName,
		Email:          input.Email,
		Address:        input.Address,
		City:           input.City,
		ZipCode:        input.ZipCode,
		ShippingMethod: input.ShippingMethod,
		PaymentMethod:  input.PaymentMethod,
		Items:          make([]repository.OrderLine, 0, len(input.Items)),
	}
	if uid, ok := middleware.UserID(c); ok {
		req.UserID = &uid
	}
	for _, item := range input.Items {
		req.Items = append(req.Items, repository.OrderLine{ProductID: item.Product, Quantity: item.Quantity})
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), req)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		handlers.Error(c, http.StatusBadRequest, verr.Error())
		return
	}
	if err != nil {
		handlers.ServerError(c, "Placing order", err)
		return
	}
	c.JSON(http.StatusCreated, handlers.Order(order))
}

// 🔵 GET /api/my-orders
func (h *Handler) MyOrders(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), uid)
	if err != nil {
		handlers.ServerError(c, "Listing orders", err)
		return
	}
	c.JSON(http.StatusOK, handlers.Orders(orders))
}
