package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Joao-ahah/centro-artesanato-api/internal/cart"
)

type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

type Order struct {
	ID             string          `json:"orderId"`
	OwnerID        string          `json:"ownerId"`
	Lines          []Line          `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	GiftWrapFee    decimal.Decimal `json:"giftWrapFee"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	CouponCode     string          `json:"couponCode,omitempty"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// FromCart freezes a cart session into an order at checkout time. The cart's
// snapshots become the order lines; the totals are carried over as charged.
func FromCart(ownerID string, st *cart.State, totals cart.Totals) *Order {
	o := &Order{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Subtotal:       totals.Subtotal,
		ShippingFee:    totals.ShippingFee,
		GiftWrapFee:    totals.GiftWrapFee,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Status:         StatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	if st.DiscountPercent > 0 {
		o.CouponCode = st.CouponCode
	}
	for _, it := range st.Items {
		o.Lines = append(o.Lines, Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return o
}
