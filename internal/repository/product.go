package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type ProductFilter struct {
	ListOptions
	Category   string
	ActiveOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, tx *gorm.DB, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*model.Product, int64, error)
	Update(ctx context.Context, productID string, fields map[string]interface{}) error
	Delete(ctx context.Context, productID string) error

	// DecrementStock is the reserve side of the inventory ledger: a
	// conditional decrement that fails instead of going negative. It must run
	// inside the caller's transaction.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error
	// IncrementStock is the release side, an unconditional add-back.
	IncrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return apperr.FromDB(err, "product", product.ProductID)
	}
	return nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, apperr.FromDB(err, "product", productID)
	}
	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, tx *gorm.DB, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := tx.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&products).Error
	if err != nil {
		return nil, apperr.FromDB(err, "product", "")
	}
	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter ProductFilter) ([]*model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.Search != "" {
		pattern := searchPattern(filter.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "product", "")
	}

	var products []*model.Product
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if err := filter.ListOptions.paginate(q).Find(&products).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "product", "")
	}
	return products, total, nil
}

func (r *productRepoImpl) Update(ctx context.Context, productID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		Updates(fields)
	if result.Error != nil {
		return apperr.FromDB(result.Error, "product", productID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product", productID)
	}
	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.Product{})
	if result.Error != nil {
		return apperr.FromDB(result.Error, "product", productID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product", productID)
	}
	return nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return apperr.FromDB(result.Error, "product", productID)
	}
	if result.RowsAffected == 0 {
		// No row matched: either the product is gone or stock is short.
		var count int64
		if err := tx.WithContext(ctx).Model(&model.Product{}).
			Where("product_id = ?", productID).
			Count(&count).Error; err != nil {
			return apperr.FromDB(err, "product", productID)
		}
		if count == 0 {
			return apperr.NotFound("product", productID)
		}
		return apperr.InsufficientStock(productID, quantity)
	}
	return nil
}

func (r *productRepoImpl) IncrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int64) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("product_id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return apperr.FromDB(result.Error, "product", productID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product", productID)
	}
	return nil
}
