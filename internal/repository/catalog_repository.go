package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pceshop_back_end/internal/models"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ProductQuery holds the relational part of a product listing. Zero values
// mean "no restriction".
type ProductQuery struct {
	CategoryID *uint
	Brand      string
	MinPrice   *int64
	MaxPrice   *int64
	Search     string
}

// --- Categories ---

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *CatalogRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := r.ensureSlugFree(ctx, &models.Category{}, category.Slug, 0); err != nil {
		return err
	}
	return duplicate(r.db.WithContext(ctx).Create(category).Error)
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := r.ensureSlugFree(ctx, &models.Category{}, category.Slug, category.ID); err != nil {
		return err
	}
	return duplicate(r.db.WithContext(ctx).Save(category).Error)
}

// DeleteCategory removes the category and its children; their products
// stay in the catalog without a category.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := tx.Model(&models.Category{}).Select("id").Where("parent_id = ?", id)
		if err := tx.Model(&models.Product{}).
			Where("category_id = ? OR category_id IN (?)", id, children).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// --- Products ---

// ListProducts returns available products, newest first. A category scope
// covers the category itself and its direct children only; an unknown
// category yields an empty list.
func (r *CatalogRepository) ListProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	products := []models.Product{}
	db := r.db.WithContext(ctx)

	query := db.Model(&models.Product{}).Where("is_available = ?", true)

	if q.CategoryID != nil {
		exists, err := r.CategoryExists(ctx, *q.CategoryID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return products, nil
		}
		children := db.Model(&models.Category{}).Select("id").Where("parent_id = ?", *q.CategoryID)
		query = query.Where("(category_id = ? OR category_id IN (?))", *q.CategoryID, children)
	}
	if q.Brand != "" {
		query = query.Where("LOWER(brand) = LOWER(?)", q.Brand)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.Search != "" {
		like := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}

	err := query.Order("created_at DESC").Order("id DESC").Find(&products).Error
	return products, err
}

func (r *CatalogRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *CatalogRepository) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := r.ensureSlugFree(ctx, &models.Product{}, product.Slug, 0); err != nil {
		return err
	}
	return duplicate(r.db.WithContext(ctx).Create(product).Error)
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := r.ensureSlugFree(ctx, &models.Product{}, product.Slug, product.ID); err != nil {
		return err
	}
	return duplicate(r.db.WithContext(ctx).Save(product).Error)
}

func (r *CatalogRepository) SetProductImage(ctx context.Context, id uint, key string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("image", key)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock adds quantity to the stock for a restock, or sets it for an
// adjustment. The row is locked for the duration of the transaction, so the
// returned previous and resulting stock describe one atomic change.
func (r *CatalogRepository) AdjustStock(ctx context.Context, id uint, kind string, quantity int) (oldStock, newStock int, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "stock").First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		oldStock = p.Stock
		newStock = quantity
		if kind == models.MovementRestock {
			newStock = oldStock + quantity
		}
		return tx.Model(&models.Product{}).Where("id = ?", id).UpdateColumn("stock", newStock).Error
	})
	return oldStock, newStock, err
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CatalogRepository) ensureSlugFree(ctx context.Context, model interface{}, slug string, exceptID uint) error {
	var count int64
	query := r.db.WithContext(ctx).Model(model).Where("slug = ?", slug)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
