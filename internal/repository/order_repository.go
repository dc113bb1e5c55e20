package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"gorm.io/gorm"

	"pceshop_back_end/internal/models"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderLine is one requested product of a checkout.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// Create persists order, its items and the stock decrements in a single
// transaction. Prices are snapshotted from the current products and the
// total is computed here. On any failure nothing is persisted.
//
// The returned movements describe the committed stock changes.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []OrderLine) ([]models.StockMovement, error) {
	var movements []models.StockMovement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.ID = 0
		order.Items = nil
		order.TotalAmount = 0
		if err := tx.Omit("Items", "User").Create(order).Error; err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(lines))
		var total int64
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", line.ProductID, notFound(err))
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &StockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			var newStock int
			if err := tx.Model(&models.Product{}).Select("stock").Where("id = ?", product.ID).Scan(&newStock).Error; err != nil {
				return err
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Price:     product.Price,
				Quantity:  line.Quantity,
			}
			if err := tx.Omit("Product").Create(&item).Error; err != nil {
				return err
			}
			snapshot := product
			snapshot.Stock = newStock
			item.Product = &snapshot
			items = append(items, item)
			total += product.Price * int64(line.Quantity)

			orderID := order.ID
			movements = append(movements, models.StockMovement{
				ID:        gocql.TimeUUID(),
				ProductID: product.ID,
				OrderID:   &orderID,
				Type:      models.MovementSale,
				Quantity:  -line.Quantity,
				NewStock:  newStock,
				CreatedAt: time.Now().UTC(),
			})
		}

		if err := tx.Model(order).UpdateColumn("total_amount", total).Error; err != nil {
			return err
		}
		order.Items = items
		order.TotalAmount = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.withItems(ctx).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Get(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withItems(ctx).First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

// MarkPaid flags the given unpaid orders as paid and returns them. Unknown
// and already paid ids are ignored.
func (r *OrderRepository) MarkPaid(ctx context.Context, ids []uint) ([]models.Order, error) {
	orders := []models.Order{}
	if len(ids) == 0 {
		return orders, nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
			Preload("Items.Product").
			Where("id IN ? AND paid = ?", ids, false).
			Order("id").
			Find(&orders).Error; err != nil {
			return err
		}
		if len(orders) == 0 {
			return nil
		}
		paid := make([]uint, 0, len(orders))
		for i := range orders {
			orders[i].Paid = true
			paid = append(paid, orders[i].ID)
		}
		return tx.Model(&models.Order{}).Where("id IN ?", paid).Update("paid", true).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product")
}
