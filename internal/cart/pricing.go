package cart

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCoupons mirrors the codes the store has always honoured.
func DefaultCoupons() map[string]int {
	return map[string]int{
		"ARTESANATO10": 10,
		"DESCONTO15":   15,
		"PROMO20":      20,
	}
}

// Pricing holds the fee constants and coupon table. Fees are configuration,
// not computed policy: shipping is flat for any non-empty cart.
type Pricing struct {
	ShippingFee decimal.Decimal
	GiftWrapFee decimal.Decimal
	Coupons     map[string]int
	Currency    currency.Unit
}

func DefaultPricing() Pricing {
	return Pricing{
		ShippingFee: decimal.RequireFromString("15.90"),
		GiftWrapFee: decimal.RequireFromString("10.00"),
		Coupons:     DefaultCoupons(),
		Currency:    currency.BRL,
	}
}

// Totals is a derived snapshot of the monetary state. It is recomputed from
// scratch on every read; there is no cached value to invalidate.
type Totals struct {
	ItemCount      int             `json:"itemCount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingFee    decimal.Decimal `json:"shippingFee"`
	GiftWrapFee    decimal.Decimal `json:"giftWrapFee"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	Currency       string          `json:"currency"`
}

func (p Pricing) TotalsFor(s *State) Totals {
	subtotal := s.Subtotal()

	shipping := decimal.Zero
	if !s.IsEmpty() {
		shipping = p.ShippingFee
	}

	giftWrap := decimal.Zero
	if s.GiftWrapEnabled {
		giftWrap = p.GiftWrapFee
	}

	discount := subtotal.
		Mul(decimal.NewFromInt(int64(s.DiscountPercent))).
		Div(decimal.NewFromInt(100))

	return Totals{
		ItemCount:      s.ItemCount(),
		Subtotal:       subtotal,
		ShippingFee:    shipping,
		GiftWrapFee:    giftWrap,
		DiscountAmount: discount,
		Total:          subtotal.Add(shipping).Add(giftWrap).Sub(discount),
		Currency:       p.Currency.String(),
	}
}
