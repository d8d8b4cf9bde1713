package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type CourierRepository interface {
	Create(ctx context.Context, courier *model.Courier) error
	FindByID(ctx context.Context, courierID string) (*model.Courier, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Courier, int64, error)
	Update(ctx context.Context, courierID string, fields map[string]interface{}) error
	Delete(ctx context.Context, courierID string) error
}

type courierRepoImpl struct {
	db *gorm.DB
}

func NewCourierRepository(db *gorm.DB) CourierRepository {
	return &courierRepoImpl{db: db}
}

func (r *courierRepoImpl) Create(ctx context.Context, courier *model.Courier) error {
	if err := r.db.WithContext(ctx).Create(courier).Error; err != nil {
		return apperr.FromDB(err, "courier", courier.CourierID)
	}
	return nil
}

func (r *courierRepoImpl) FindByID(ctx context.Context, courierID string) (*model.Courier, error) {
	var courier model.Courier
	err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).
		First(&courier).Error
	if err != nil {
		return nil, apperr.FromDB(err, "courier", courierID)
	}
	return &courier, nil
}

func (r *courierRepoImpl) List(ctx context.Context, opts ListOptions) ([]*model.Courier, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Courier{})
	if opts.Search != "" {
		pattern := searchPattern(opts.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(contact_number) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "courier", "")
	}

	var couriers []*model.Courier
	if opts.OrderBy == "" {
		opts.OrderBy = "name"
	}
	if err := opts.paginate(q).Find(&couriers).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "courier", "")
	}
	return couriers, total, nil
}

func (r *courierRepoImpl) Update(ctx context.Context, courierID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Courier{}).
		Where("courier_id = ?", courierID).
		Updates(fields)
	if result.Error != nil {
		return apperr.FromDB(result.Error, "courier", courierID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("courier", courierID)
	}
	return nil
}

func (r *courierRepoImpl) Delete(ctx context.Context, courierID string) error {
	result := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).
		Delete(&model.Courier{})
	if result.Error != nil {
		return apperr.FromDB(result.Error, "courier", courierID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("courier", courierID)
	}
	return nil
}
