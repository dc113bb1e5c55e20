package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/testutil"
)

type recordingLedger struct {
	movements []models.StockMovement
	err       error
}

func (r *recordingLedger) RecordMovements(_ context.Context, m []models.StockMovement) error {
	r.movements = append(r.movements, m...)
	return r.err
}

type recordingNotifier struct {
	sent []models.Order
	err  error
}

func (r *recordingNotifier) SendOrderConfirmation(_ context.Context, o *models.Order) error {
	r.sent = append(r.sent, *o)
	return r.err
}

type checkoutFixture struct {
	db       *gorm.DB
	svc      *CheckoutService
	ledger   *recordingLedger
	notifier *recordingNotifier
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	db := testutil.NewTestDB(t)
	f := &checkoutFixture{db: db, ledger: &recordingLedger{}, notifier: &recordingNotifier{}}
	f.svc = NewCheckoutService(repository.NewOrderRepository(db), nil, nil)
	f.svc.ledger = f.ledger
	f.svc.notifier = f.notifier
	f.svc.dispatch = func(fn func()) { fn() }
	return f
}

func (f *checkoutFixture) product(t *testing.T, slug string, price int64, stock int) *models.Product {
	p := &models.Product{Name: slug, Slug: slug, Price: price, Stock: stock, IsAvailable: true}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func validRequest(lines ...repository.OrderLine) CheckoutRequest {
	return CheckoutRequest{
		FullName: "Jan Novak",
		Email:    "jan@example.com",
		Address:  "Main 1",
		City:     "Prague",
		ZipCode:  "11000",
		Items:    lines,
	}
}

func TestPlaceOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	gpu := f.product(t, "gpu", 500, 3)

	order, err := f.svc.PlaceOrder(context.Background(), validRequest(repository.OrderLine{ProductID: gpu.ID, Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), order.TotalAmount)
	assert.Equal(t, models.DefaultShippingMethod, order.ShippingMethod)
	assert.Equal(t, models.DefaultPaymentMethod, order.PaymentMethod)
	assert.False(t, order.Paid)
	assert.Nil(t, order.UserID)

	require.Len(t, f.ledger.movements, 1)
	assert.Equal(t, 1, f.ledger.movements[0].NewStock)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, order.ID, f.notifier.sent[0].ID)
}

func TestPlaceOrderSideEffectFailuresDoNotFailOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	f.ledger.err = errors.New("scylla down")
	f.notifier.err = errors.New("smtp down")
	gpu := f.product(t, "gpu", 500, 3)

	order, err := f.svc.PlaceOrder(context.Background(), validRequest(repository.OrderLine{ProductID: gpu.ID, Quantity: 1}))
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)
	gpu := f.product(t, "gpu", 500, 1)

	_, err := f.svc.PlaceOrder(context.Background(), validRequest(repository.OrderLine{ProductID: gpu.ID, Quantity: 2}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "gpu")

	assert.Empty(t, f.ledger.movements)
	assert.Empty(t, f.notifier.sent)
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newCheckoutFixture(t)
	gpu := f.product(t, "gpu", 500, 5)
	line := repository.OrderLine{ProductID: gpu.ID, Quantity: 1}

	cases := map[string]func(*CheckoutRequest){
		"full_name": func(r *CheckoutRequest) { r.FullName = "  " },
		"email":     func(r *CheckoutRequest) { r.Email = "not-an-email" },
		"zip_code":  func(r *CheckoutRequest) { r.ZipCode = "" },
		"items":     func(r *CheckoutRequest) { r.Items = nil },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			req := validRequest(line)
			mutate(&req)
			_, err := f.svc.PlaceOrder(context.Background(), req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}

	_, err := f.svc.PlaceOrder(context.Background(), validRequest(repository.OrderLine{ProductID: gpu.ID, Quantity: 0}))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.svc.PlaceOrder(context.Background(), validRequest(repository.OrderLine{ProductID: 999, Quantity: 1}))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
}
