package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AllTables is passed to AutoMigrate on startup.
var AllTables = []interface{}{
	&Customer{},
	&Address{},
	&Vendor{},
	&Product{},
	&Order{},
	&OrderItem{},
	&Courier{},
	&OrderDelivery{},
	&Payment{},
	&ErrorLog{},
}

type Customer struct {
	CustomerID       string    `gorm:"primaryKey;size:36" json:"customer_id"`
	Name             string    `gorm:"size:255;index;not null" json:"name"`
	PhoneNumber      string    `gorm:"size:32;index;not null" json:"phone_number"`
	Email            *string   `gorm:"size:255" json:"email,omitempty"`
	DefaultAddressID *string   `gorm:"size:36" json:"default_address_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Addresses []Address `gorm:"foreignKey:CustomerID;references:CustomerID" json:"addresses,omitempty"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.CustomerID == "" {
		c.CustomerID = uuid.NewString()
	}
	return nil
}

type Address struct {
	AddressID   string    `gorm:"primaryKey;size:36" json:"address_id"`
	CustomerID  string    `gorm:"size:36;index;not null" json:"customer_id"`
	AddressLine string    `gorm:"size:512;not null" json:"address_line"`
	City        string    `gorm:"size:128;not null" json:"city"`
	PostalCode  string    `gorm:"size:16;not null" json:"postal_code"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.AddressID == "" {
		a.AddressID = uuid.NewString()
	}
	return nil
}

type Vendor struct {
	VendorID      string    `gorm:"primaryKey;size:36" json:"vendor_id"`
	Name          string    `gorm:"size:255;index;not null" json:"name"`
	ContactNumber string    `gorm:"size:32;not null" json:"contact_number"`
	Email         string    `gorm:"size:255;not null" json:"email"`
	Location      string    `gorm:"size:255" json:"location"`
	CreatedAt     time.Time `json:"created_at"`
}

func (v *Vendor) BeforeCreate(tx *gorm.DB) error {
	if v.VendorID == "" {
		v.VendorID = uuid.NewString()
	}
	return nil
}

// Product stock is mutated only through the inventory ledger (conditional
// decrement / add-back), never by a plain product update.
type Product struct {
	ProductID     string          `gorm:"primaryKey;size:36" json:"product_id"`
	VendorID      string          `gorm:"size:36;index;not null" json:"vendor_id"`
	Name          string          `gorm:"size:255;index;not null" json:"name"`
	Description   string          `gorm:"size:1024" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int64           `gorm:"not null" json:"stock_quantity"`
	Category      string          `gorm:"size:128;index" json:"category"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductID == "" {
		p.ProductID = uuid.NewString()
	}
	return nil
}

type Order struct {
	OrderID       string          `gorm:"primaryKey;size:36" json:"order_id"`
	CustomerID    string          `gorm:"size:36;index;not null" json:"customer_id"`
	AddressID     string          `gorm:"size:36;not null" json:"address_id"`
	Status        OrderStatus     `gorm:"size:32;index;not null" json:"status"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	PaymentStatus PaymentStatus   `gorm:"size:32;index;not null" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Customer *Customer   `gorm:"foreignKey:CustomerID;references:CustomerID" json:"customer,omitempty"`
	Address  *Address    `gorm:"foreignKey:AddressID;references:AddressID" json:"address,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderID == "" {
		o.OrderID = uuid.NewString()
	}
	return nil
}

// OrderItem.Price is the unit price snapshot taken at order time; later
// product price changes do not touch it.
type OrderItem struct {
	OrderItemID string          `gorm:"primaryKey;size:36" json:"order_item_id"`
	OrderID     string          `gorm:"size:36;index;not null" json:"order_id"`
	ProductID   string          `gorm:"size:36;index;not null" json:"product_id"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.OrderItemID == "" {
		i.OrderItemID = uuid.NewString()
	}
	return nil
}

type Courier struct {
	CourierID     string        `gorm:"primaryKey;size:36" json:"courier_id"`
	Name          string        `gorm:"size:255;index;not null" json:"name"`
	APIEndpoint   string        `gorm:"size:512" json:"api_endpoint"`
	ContactNumber string        `gorm:"size:32" json:"contact_number"`
	Status        CourierStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (c *Courier) BeforeCreate(tx *gorm.DB) error {
	if c.CourierID == "" {
		c.CourierID = uuid.NewString()
	}
	return nil
}

type OrderDelivery struct {
	DeliveryID     string         `gorm:"primaryKey;size:36" json:"delivery_id"`
	OrderID        string         `gorm:"size:36;uniqueIndex;not null" json:"order_id"`
	CourierID      string         `gorm:"size:36;index;not null" json:"courier_id"`
	TrackingNumber string         `gorm:"size:64;not null" json:"tracking_number"`
	Status         DeliveryStatus `gorm:"size:32;not null" json:"status"`
	AssignedAt     time.Time      `json:"assigned_at"`

	Courier *Courier `gorm:"foreignKey:CourierID;references:CourierID" json:"courier,omitempty"`
}

func (d *OrderDelivery) BeforeCreate(tx *gorm.DB) error {
	if d.DeliveryID == "" {
		d.DeliveryID = uuid.NewString()
	}
	return nil
}

type Payment struct {
	PaymentID      string          `gorm:"primaryKey;size:36" json:"payment_id"`
	OrderID        string          `gorm:"size:36;index;not null" json:"order_id"`
	Provider       string          `gorm:"size:64;not null" json:"provider"`
	Amount         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status         PaymentState    `gorm:"size:16;not null" json:"status"`
	TransactionRef string          `gorm:"size:128;index" json:"transaction_ref"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == "" {
		p.PaymentID = uuid.NewString()
	}
	return nil
}

type ErrorLog struct {
	ErrorID   string    `gorm:"primaryKey;size:36" json:"error_id"`
	OrderID   *string   `gorm:"size:36;index" json:"order_id,omitempty"`
	ErrorType ErrorType `gorm:"size:32;index;not null" json:"error_type"`
	Message   string    `gorm:"size:1024;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *ErrorLog) BeforeCreate(tx *gorm.DB) error {
	if e.ErrorID == "" {
		e.ErrorID = uuid.NewString()
	}
	return nil
}
