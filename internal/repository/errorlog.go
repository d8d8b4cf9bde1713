package repository

import (
	"context"

	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

type ErrorLogRepository interface {
	Create(ctx context.Context, entry *model.ErrorLog) error
	List(ctx context.Context, errorType model.ErrorType, opts ListOptions) ([]*model.ErrorLog, int64, error)
}

type errorLogRepoImpl struct {
	db *gorm.DB
}

func NewErrorLogRepository(db *gorm.DB) ErrorLogRepository {
	return &errorLogRepoImpl{db: db}
}

func (r *errorLogRepoImpl) Create(ctx context.Context, entry *model.ErrorLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return apperr.FromDB(err, "error_log", entry.ErrorID)
	}
	return nil
}

func (r *errorLogRepoImpl) List(ctx context.Context, errorType model.ErrorType, opts ListOptions) ([]*model.ErrorLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ErrorLog{})
	if errorType != "" {
		q = q.Where("error_type = ?", errorType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "error_log", "")
	}

	var entries []*model.ErrorLog
	if opts.OrderBy == "" {
		opts.OrderBy = "created_at"
		opts.Desc = true
	}
	if err := opts.paginate(q).Find(&entries).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "error_log", "")
	}
	return entries, total, nil
}
