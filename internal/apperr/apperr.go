// Package apperr carries the typed error kinds of the order/inventory core.
// Every failure crossing a service boundary is one of these kinds so handlers
// can map it to an HTTP status and a user-facing message without string
// matching.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind string

const (
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptyOrder        Kind = "empty_order"
	KindIllegalTransition Kind = "illegal_transition"
	KindAmountMismatch    Kind = "amount_mismatch"
	KindNotFound          Kind = "not_found"
	KindStoreUnavailable  Kind = "store_unavailable"
	KindValidation        Kind = "validation"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func InsufficientStock(productID string, requested int64) *Error {
	return New(KindInsufficientStock, "insufficient stock for product %s: requested %d", productID, requested)
}

func EmptyOrder() *Error {
	return New(KindEmptyOrder, "order must contain at least one item")
}

func IllegalTransition(from, to string) *Error {
	return New(KindIllegalTransition, "illegal order status transition %s -> %s", from, to)
}

func AmountMismatch(got, want string) *Error {
	return New(KindAmountMismatch, "payment amount %s does not match order total %s", got, want)
}

func NotFound(entity, id string) *Error {
	return New(KindNotFound, "%s %s not found", entity, id)
}

// KindOf classifies err; unrecognized errors are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Retryable reports whether the caller may retry the operation with backoff.
// Only transient store failures qualify.
func Retryable(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}

// FromDB classifies an error returned by the store boundary. Missing rows map
// to NotFound; anything else is treated as a transient store failure, which is
// the honest default for driver and connection errors.
func FromDB(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity, id)
	}
	return Wrap(KindStoreUnavailable, err, "store unavailable")
}

// HTTPStatus maps an error kind to the response status used by the API error
// handler.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInsufficientStock, KindIllegalTransition, KindAmountMismatch:
		return http.StatusConflict
	case KindEmptyOrder, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
