package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"delivery-admin-api/internal/dto"
	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

// ErrorLogService writes operational failures to the error_logs table.
// Reporting is best effort: a failure to record must never mask the original
// error, so Report only logs when the insert itself fails.
type ErrorLogService interface {
	Report(ctx context.Context, orderID *string, errorType model.ErrorType, message string)
	List(ctx context.Context, errorType string, q dto.ListQuery) ([]*model.ErrorLog, int64, error)
}

type errorLogServiceImpl struct {
	repo repository.ErrorLogRepository
	log  *logrus.Logger
}

func NewErrorLogService(repo repository.ErrorLogRepository, log *logrus.Logger) ErrorLogService {
	return &errorLogServiceImpl{repo: repo, log: log}
}

func (s *errorLogServiceImpl) Report(ctx context.Context, orderID *string, errorType model.ErrorType, message string) {
	entry := &model.ErrorLog{
		OrderID:   orderID,
		ErrorType: errorType,
		Message:   message,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.WithFields(logrus.Fields{
			"error_type": errorType,
			"message":    message,
		}).WithError(err).Error("failed to record error log entry")
	}
}

func (s *errorLogServiceImpl) List(ctx context.Context, errorType string, q dto.ListQuery) ([]*model.ErrorLog, int64, error) {
	return s.repo.List(ctx, model.ErrorType(errorType), repository.ListOptions{
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}
