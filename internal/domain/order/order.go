package order

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidQuantity        = errors.New("item quantity must be at least 1")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidTransition      = errors.New("order has already been processed")
	ErrReferenceCodeExhausted = errors.New("could not allocate a unique reference code")
)

// validTransitions defines allowed state transitions. Pending is the only
// non-terminal status.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// ParseStatus converts a wire value into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CanTransitionTo checks if an order in status s may move to target.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, next := range allowed {
		if next == target {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// LineItem is an immutable snapshot of a purchased product taken at
// checkout time. Later catalog edits never alter it.
type LineItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type Order struct {
	ID            int64      `json:"id"`
	ReferenceCode string     `json:"referenceCode"`
	CustomerID    int64      `json:"customerId"`
	Items         []LineItem `json:"items"`
	TotalPrice    int64      `json:"totalPrice"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// CustomerSummary is the slice of customer identity joined onto admin order
// views.
type CustomerSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WithCustomer is an order together with the customer who placed it.
type WithCustomer struct {
	Order
	Customer CustomerSummary `json:"customer"`
}

// Receipt is what checkout hands back: enough for the caller to render a
// scannable pickup code.
type Receipt struct {
	ID            int64      `json:"id"`
	ReferenceCode string     `json:"referenceCode"`
	TotalPrice    int64      `json:"totalPrice"`
	Items         []LineItem `json:"items"`
}

// Stats is the admin dashboard aggregate: per-status counts plus completed
// revenue since local midnight.
type Stats struct {
	Pending      int64 `json:"pending"`
	Completed    int64 `json:"completed"`
	Cancelled    int64 `json:"cancelled"`
	TodayRevenue int64 `json:"todayRevenue"`
}

// Total sums unitPrice*quantity over items. The shop's currency has no
// subunits, so all arithmetic is in whole units.
func Total(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPrice * int64(it.Quantity)
	}
	return total
}

// StartOfDay returns midnight of t's calendar day in the process timezone.
// The revenue aggregate and its tests share this single definition.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
