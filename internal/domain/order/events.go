package order

// Event types published to the order event topic.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderCompleted = "order.completed"
	EventOrderCancelled = "order.cancelled"
)

// Placed is emitted after a checkout commits a new pending order.
type Placed struct {
	OrderID       int64      `json:"order_id"`
	ReferenceCode string     `json:"reference_code"`
	CustomerID    int64      `json:"customer_id"`
	Items         []LineItem `json:"items"`
	TotalPrice    int64      `json:"total_price"`
}

// StatusChanged is emitted after a pending order reaches a terminal status.
type StatusChanged struct {
	OrderID       int64  `json:"order_id"`
	ReferenceCode string `json:"reference_code"`
	CustomerID    int64  `json:"customer_id"`
	Status        Status `json:"status"`
}
