package billing

import "fmt"

// NotFoundError reports a missing shop, product or bill.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// InvalidReferenceError reports a customer reference that does not
// resolve within the shop.
type InvalidReferenceError struct {
	CustomerID string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("customer with ID %s not found", e.CustomerID)
}

// ValidationError reports a malformed cart or quantity.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InsufficientStockError reports a line that would drive stock negative.
type InsufficientStockError struct {
	ProductName string
	Available   float64
	Requested   float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %g, Requested: %g",
		e.ProductName, e.Available, e.Requested)
}

// InvalidStateError reports an illegal status transition, e.g. cancelling
// an already-cancelled bill.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}
