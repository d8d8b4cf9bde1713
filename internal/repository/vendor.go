package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	FindByID(ctx context.Context, vendorID string) (*model.Vendor, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Vendor, int64, error)
	Update(ctx context.Context, vendorID string, fields map[string]interface{}) error
}

type vendorRepoImpl struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepoImpl{db: db}
}

func (r *vendorRepoImpl) Create(ctx context.Context, vendor *model.Vendor) error {
	if err := r.db.WithContext(ctx).Create(vendor).Error; err != nil {
		return apperr.FromDB(err, "vendor", vendor.VendorID)
	}
	return nil
}

func (r *vendorRepoImpl) FindByID(ctx context.Context, vendorID string) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		First(&vendor).Error
	if err != nil {
		return nil, apperr.FromDB(err, "vendor", vendorID)
	}
	return &vendor, nil
}

func (r *vendorRepoImpl) List(ctx context.Context, opts ListOptions) ([]*model.Vendor, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Vendor{})
	if opts.Search != "" {
		pattern := searchPattern(opts.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "vendor", "")
	}

	var vendors []*model.Vendor
	if opts.OrderBy == "" {
		opts.OrderBy = "name"
	}
	if err := opts.paginate(q).Find(&vendors).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "vendor", "")
	}
	return vendors, total, nil
}

func (r *vendorRepoImpl) Update(ctx context.Context, vendorID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Vendor{}).
		Where("vendor_id = ?", vendorID).
		Updates(fields)
	if result.Error != nil {
		return apperr.FromDB(result.Error, "vendor", vendorID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("vendor", vendorID)
	}
	return nil
}
