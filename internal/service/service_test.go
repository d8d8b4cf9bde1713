package service

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"delivery-admin-api/internal/model"
	"delivery-admin-api/internal/repository"
)

// newTestDB opens a private in-memory database per test. A single connection
// keeps concurrent transactions serialized the way the production store's
// row locks would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(model.AllTables...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	db           *gorm.DB
	orderSvc     OrderService
	paymentSvc   PaymentService
	ledger       InventoryLedger
	catalogSvc   CatalogService
	customerSvc  CustomerService
	courierSvc   CourierService
	dashboardSvc DashboardService

	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	errorLogRepo repository.ErrorLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	log := testLogger()

	customerRepo := repository.NewCustomerRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	courierRepo := repository.NewCourierRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	errorLogRepo := repository.NewErrorLogRepository(db)

	errorLogSvc := NewErrorLogService(errorLogRepo, log)
	ledger := NewInventoryLedger(productRepo, log)
	paymentSvc := NewPaymentService(db, orderRepo, paymentRepo, errorLogSvc, log)
	orderSvc := NewOrderService(db, orderRepo, productRepo, customerRepo, ledger, paymentSvc, errorLogSvc, log)

	return &fixture{
		db:           db,
		orderSvc:     orderSvc,
		paymentSvc:   paymentSvc,
		ledger:       ledger,
		catalogSvc:   NewCatalogService(productRepo, vendorRepo, log),
		customerSvc:  NewCustomerService(customerRepo, log),
		courierSvc:   NewCourierService(courierRepo, deliveryRepo, orderRepo, errorLogSvc, log),
		dashboardSvc: NewDashboardService(repository.NewStatsRepository(db)),
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		errorLogRepo: errorLogRepo,
	}
}

func (f *fixture) seedCustomer(t *testing.T) (*model.Customer, *model.Address) {
	t.Helper()

	customer := &model.Customer{Name: "Test Customer", PhoneNumber: "0500000001"}
	require.NoError(t, f.db.Create(customer).Error)

	address := &model.Address{
		CustomerID:  customer.CustomerID,
		AddressLine: "1 Test Street",
		City:        "Riyadh",
		PostalCode:  "11564",
	}
	require.NoError(t, f.db.Create(address).Error)
	return customer, address
}

func (f *fixture) seedVendor(t *testing.T) *model.Vendor {
	t.Helper()

	vendor := &model.Vendor{
		Name:          "Test Vendor",
		ContactNumber: "0500000002",
		Email:         "vendor@example.com",
		Location:      "Riyadh",
	}
	require.NoError(t, f.db.Create(vendor).Error)
	return vendor
}

func (f *fixture) seedProduct(t *testing.T, vendorID string, price string, stock int64) *model.Product {
	t.Helper()

	product := &model.Product{
		VendorID:      vendorID,
		Name:          "Product " + uuid.NewString()[:8],
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		Category:      "general",
		IsActive:      true,
	}
	require.NoError(t, f.db.Create(product).Error)
	return product
}

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()

	var product model.Product
	require.NoError(t, f.db.Where("product_id = ?", productID).First(&product).Error)
	return product.StockQuantity
}
