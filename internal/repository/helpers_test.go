package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pceshop_back_end/internal/models"
	"pceshop_back_end/internal/testutil"
)

type fixture struct {
	db      *gorm.DB
	ctx     context.Context
	catalog *CatalogRepository
	carts   *CartRepository
	orders  *OrderRepository
	users   *UserRepository
	cards   *CardRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewTestDB(t)
	return &fixture{
		db:      db,
		ctx:     context.Background(),
		catalog: NewCatalogRepository(db),
		carts:   NewCartRepository(db),
		orders:  NewOrderRepository(db),
		users:   NewUserRepository(db),
		cards:   NewCardRepository(db),
	}
}

func (f *fixture) category(t *testing.T, name string, parent *models.Category) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, Slug: fmt.Sprintf("cat-%s", name)}
	if parent != nil {
		c.ParentID = &parent.ID
	}
	require.NoError(t, f.catalog.CreateCategory(f.ctx, c))
	return c
}

func (f *fixture) product(t *testing.T, name string, cat *models.Category, mutate func(*models.Product)) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Slug:        fmt.Sprintf("p-%s", name),
		Price:       100,
		Stock:       10,
		IsAvailable: true,
	}
	if cat != nil {
		p.CategoryID = &cat.ID
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, f.catalog.CreateProduct(f.ctx, p))
	return p
}

func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "x", IsActive: true}
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
