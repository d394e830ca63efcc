package domain

// OrderStatus represents the fulfilment status of a storefront order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every status in its usual order of progression
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// IsValid checks if the order status is known
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// AgeRating is the audience group of a book
type AgeRating string

const (
	AgeRatingChildren AgeRating = "barn"
	AgeRatingYouth    AgeRating = "ungdom"
	AgeRatingAdult    AgeRating = "voksen"
)

// IsValid checks if the age rating is known
func (a AgeRating) IsValid() bool {
	switch a {
	case AgeRatingChildren, AgeRatingYouth, AgeRatingAdult:
		return true
	default:
		return false
	}
}

// Order event types recorded in the audit log
const (
	OrderEventCreated      = "order_created"
	OrderEventStatusChange = "status_change"
)
