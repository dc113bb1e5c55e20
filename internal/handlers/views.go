package handlers

import (
	"context"
	"time"

	"pceshop_back_end/internal/models"
)

type imageURLs interface {
	URL(ctx context.Context, key string) string
}

// Product returns p with its image key resolved to a download URL.
func Product(ctx context.Context, images imageURLs, p models.Product) models.Product {
	p.Image = images.URL(ctx, p.Image)
	return p
}

func Products(ctx context.Context, images imageURLs, products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	for i, p := range products {
		out[i] = Product(ctx, images, p)
	}
	return out
}

type CartItemView struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Slug      string `json:"slug"`
	Stock     int    `json:"stock"`
}

type CartView struct {
	ID    uint           `json:"id"`
	Items []CartItemView `json:"items"`
}

func Cart(ctx context.Context, images imageURLs, cart *models.Cart) CartView {
	view := CartView{ID: cart.ID, Items: make([]CartItemView, 0, len(cart.Items))}
	for _, item := range cart.Items {
		v := CartItemView{ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity}
		if p := item.Product; p != nil {
			v.Name = p.Name
			v.Price = p.Price
			v.Image = images.URL(ctx, p.Image)
			v.Slug = p.Slug
			v.Stock = p.Stock
		}
		view.Items = append(view.Items, v)
	}
	return view
}

type OrderItemView struct {
	Product     uint   `json:"product"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderView struct {
	ID             uint            `json:"id"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	ZipCode        string          `json:"zip_code"`
	TotalAmount    int64           `json:"total_amount"`
	ShippingMethod string          `json:"shipping_method"`
	PaymentMethod  string          `json:"payment_method"`
	Items          []OrderItemView `json:"items"`
	CreatedAt      time.Time       `json:"created_at"`
	Paid           bool            `json:"paid"`
}

func Order(o *models.Order) OrderView {
	view := OrderView{
		ID:             o.ID,
		FullName:       o.FullName,
		Email:          o.Email,
		Address:        o.Address,
		City:           o.City,
		ZipCode:        o.ZipCode,
		TotalAmount:    o.TotalAmount,
		ShippingMethod: o.ShippingMethod,
		PaymentMethod:  o.PaymentMethod,
		Items:          make([]OrderItemView, 0, len(o.Items)),
		CreatedAt:      o.CreatedAt,
		Paid:           o.Paid,
	}
	for _, item := range o.Items {
		v := OrderItemView{Product: item.ProductID, Quantity: item.Quantity, Price: item.Price}
		if item.Product != nil {
			v.ProductName = item.Product.Name
		}
		view.Items = append(view.Items, v)
	}
	return view
}

func Orders(orders []models.Order) []OrderView {
	out := make([]OrderView, 0, len(orders))
	for i := range orders {
		out = append(out, Order(&orders[i]))
	}
	return out
}
