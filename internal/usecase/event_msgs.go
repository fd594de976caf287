package usecase

// Published to RabbitMQ after a successful checkout.
type PlacedMsg struct {
	OrderID      string `json:"orderId"`
	CustomerName string `json:"customerName"`
	TotalAmount  int64  `json:"totalAmount"`
	Status       string `json:"status"`
}

// Sent by the operator-side pipeline on Kafka when an administrator advances
// an order.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
