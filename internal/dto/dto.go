package dto

import (
	"github.com/shopspring/decimal"

	"delivery-admin-api/internal/model"
)

// ListQuery is the common query surface of every list screen: substring
// search, optional enum filter, offset/limit pagination.
type ListQuery struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Category string `query:"category"`
	Page     int    `query:"page"`
	PerPage  int    `query:"per_page"`
}

type Paginated struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	AddressID  string             `json:"address_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed dispatched delivered cancelled"`
}

type RecordPaymentRequest struct {
	Provider       string          `json:"provider" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	TransactionRef string          `json:"transaction_ref" validate:"required"`
	Outcome        string          `json:"outcome" validate:"required,oneof=success failed"`
}

type CreateCustomerRequest struct {
	Name        string  `json:"name" validate:"required"`
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
}

type CreateAddressRequest struct {
	AddressLine string   `json:"address_line" validate:"required"`
	City        string   `json:"city" validate:"required"`
	PostalCode  string   `json:"postal_code" validate:"required"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}

type CustomerSummary struct {
	model.Customer
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type CreateVendorRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Location      string `json:"location"`
}

type CreateProductRequest struct {
	VendorID      string          `json:"vendor_id" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int64           `json:"stock_quantity" validate:"gte=0"`
	Category      string          `json:"category"`
}

// UpdateProductRequest deliberately has no stock field: stock moves only
// through the inventory ledger.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *string          `json:"category,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type CreateCourierRequest struct {
	Name          string `json:"name" validate:"required"`
	APIEndpoint   string `json:"api_endpoint"`
	ContactNumber string `json:"contact_number"`
	Status        string `json:"status" validate:"required,oneof=active inactive"`
}

type AssignCourierRequest struct {
	CourierID string `json:"courier_id" validate:"required"`
}

type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=assigned in_transit delivered failed"`
}

type DashboardStats struct {
	TotalOrders    int64           `json:"total_orders"`
	TotalCustomers int64           `json:"total_customers"`
	TotalProducts  int64           `json:"total_products"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PendingOrders  int64           `json:"pending_orders"`
	RecentOrders   []*model.Order  `json:"recent_orders"`
}
