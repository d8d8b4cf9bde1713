package model

// OrderStatus is the delivery-side lifecycle of an order. It moves only
// forward: pending -> confirmed -> dispatched -> delivered, with cancellation
// allowed from any non-terminal state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderConfirmed, OrderCancelled},
	OrderConfirmed:  {OrderDispatched, OrderCancelled},
	OrderDispatched: {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether s -> to is a legal edge.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// PaymentStatus is the payment-side axis of an order, independent from the
// delivery lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// PaymentState is the status of a single payment record.
type PaymentState string

const (
	PaymentPending  PaymentState = "pending"
	PaymentSuccess  PaymentState = "success"
	PaymentFailed   PaymentState = "failed"
	PaymentRefunded PaymentState = "refunded"
)

type CourierStatus string

const (
	CourierActive   CourierStatus = "active"
	CourierInactive CourierStatus = "inactive"
)

type DeliveryStatus string

const (
	DeliveryAssigned  DeliveryStatus = "assigned"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

type ErrorType string

const (
	ErrorStock   ErrorType = "stock_issue"
	ErrorCourier ErrorType = "courier_issue"
	ErrorPayment ErrorType = "payment_issue"
	ErrorSystem  ErrorType = "system_error"
)
