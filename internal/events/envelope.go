package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
)

// EventEnvelope is the shared wrapper for published events: identity,
// causality, ordering per partition, and the payload itself.
type EventEnvelope struct {
	EventName     string             `json:"eventName"`
	EventVersion  int                `json:"eventVersion"`
	EventID       string             `json:"eventId"`
	CorrelationID string             `json:"correlationId,omitempty"`
	CausationID   string             `json:"causationId,omitempty"`
	Producer      string             `json:"producer"`
	PartitionKey  string             `json:"partitionKey"`
	Sequence      int64              `json:"sequence"`
	OccurredAt    time.Time          `json:"occurredAt"`
	Payload       OrderPlacedPayload `json:"payload"`
}

type OrderPlacedPayload struct {
	OrderID        string           `json:"orderId"`
	OwnerID        string           `json:"ownerId"`
	Lines          []OrderLineEvent `json:"lines"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	ShippingFee    decimal.Decimal  `json:"shippingFee"`
	GiftWrapFee    decimal.Decimal  `json:"giftWrapFee"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	Total          decimal.Decimal  `json:"total"`
	CouponCode     string           `json:"couponCode,omitempty"`
}

type OrderLineEvent struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// PublishMetadata carries the correlation/causation ids extracted from the
// triggering HTTP request.
type PublishMetadata struct {
	CorrelationID string
	CausationID   string
}

func buildOrderPlacedEvent(o *order.Order, meta PublishMetadata, seq int64, occurredAt time.Time) EventEnvelope {
	payload := OrderPlacedPayload{
		OrderID:        o.ID,
		OwnerID:        o.OwnerID,
		Subtotal:       o.Subtotal,
		ShippingFee:    o.ShippingFee,
		GiftWrapFee:    o.GiftWrapFee,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		CouponCode:     o.CouponCode,
	}
	for _, l := range o.Lines {
		payload.Lines = append(payload.Lines, OrderLineEvent{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	return EventEnvelope{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producerName,
		PartitionKey:  o.OwnerID,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Payload:       payload,
	}
}
