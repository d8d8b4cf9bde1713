package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delivery-admin-api/internal/apperr"
	"delivery-admin-api/internal/model"
)

// CustomerStats is the per-customer aggregate the customer screen shows. It
// comes back from a single grouped join query instead of one round trip per
// customer.
type CustomerStats struct {
	CustomerID string          `json:"customer_id"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, customerID string) (*model.Customer, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Customer, int64, error)
	Update(ctx context.Context, customerID string, fields map[string]interface{}) error
	// StatsFor aggregates order count and total spent for the given
	// customers in one query.
	StatsFor(ctx context.Context, customerIDs []string) (map[string]CustomerStats, error)
	CreateAddress(ctx context.Context, address *model.Address) error
	FindAddress(ctx context.Context, addressID string) (*model.Address, error)
}

type customerRepoImpl struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepoImpl{db: db}
}

func (r *customerRepoImpl) Create(ctx context.Context, customer *model.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return apperr.FromDB(err, "customer", customer.CustomerID)
	}
	return nil
}

func (r *customerRepoImpl) FindByID(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Preload("Addresses").
		Where("customer_id = ?", customerID).
		First(&customer).Error
	if err != nil {
		return nil, apperr.FromDB(err, "customer", customerID)
	}
	return &customer, nil
}

func (r *customerRepoImpl) List(ctx context.Context, opts ListOptions) ([]*model.Customer, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Customer{})
	if opts.Search != "" {
		pattern := searchPattern(opts.Search)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(phone_number) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "customer", "")
	}

	var customers []*model.Customer
	if opts.OrderBy == "" {
		opts.OrderBy = "created_at"
		opts.Desc = true
	}
	if err := opts.paginate(q).Find(&customers).Error; err != nil {
		return nil, 0, apperr.FromDB(err, "customer", "")
	}
	return customers, total, nil
}

func (r *customerRepoImpl) Update(ctx context.Context, customerID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Customer{}).
		Where("customer_id = ?", customerID).
		Updates(fields)
	if result.Error != nil {
		return apperr.FromDB(result.Error, "customer", customerID)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("customer", customerID)
	}
	return nil
}

func (r *customerRepoImpl) StatsFor(ctx context.Context, customerIDs []string) (map[string]CustomerStats, error) {
	if len(customerIDs) == 0 {
		return map[string]CustomerStats{}, nil
	}

	var rows []CustomerStats
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("customer_id, COUNT(*) AS order_count, COALESCE(SUM(total_amount), 0) AS total_spent").
		Where("customer_id IN ?", customerIDs).
		Group("customer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromDB(err, "customer", "")
	}

	stats := make(map[string]CustomerStats, len(rows))
	for _, row := range rows {
		stats[row.CustomerID] = row
	}
	return stats, nil
}

func (r *customerRepoImpl) CreateAddress(ctx context.Context, address *model.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return apperr.FromDB(err, "address", address.AddressID)
	}
	return nil
}

func (r *customerRepoImpl) FindAddress(ctx context.Context, addressID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("address_id = ?", addressID).
		First(&address).Error
	if err != nil {
		return nil, apperr.FromDB(err, "address", addressID)
	}
	return &address, nil
}
