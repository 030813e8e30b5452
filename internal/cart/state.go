package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AddItem merges by product id: an existing line gets its quantity bumped,
// a new product is appended so display order follows insertion order.
func (s *State) AddItem(item Item) {
	for i := range s.Items {
		if s.Items[i].ProductID == item.ProductID {
			s.Items[i].Quantity += item.Quantity
			return
		}
	}
	s.Items = append(s.Items, item)
}

// RemoveItem deletes the line with the given product id. Removing an absent
// id is a no-op, so the operation is idempotent.
func (s *State) RemoveItem(productID string) {
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of an existing line. Values below 1 are
// ignored; removal is an explicit separate operation.
func (s *State) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range s.Items {
		if s.Items[i].ProductID == productID {
			s.Items[i].Quantity = quantity
			return
		}
	}
}

func (s *State) ToggleGiftWrap() {
	s.GiftWrapEnabled = !s.GiftWrapEnabled
}

// SetCouponCode stores the candidate code, normalized to upper case. The
// discount only changes once ApplyCoupon runs.
func (s *State) SetCouponCode(code string) {
	s.CouponCode = strings.ToUpper(strings.TrimSpace(code))
}

// ApplyCoupon resolves the pending code against the coupon table. Unknown or
// empty codes reset the discount to zero and report false; that is a normal
// outcome, not an error.
func (s *State) ApplyCoupon(coupons map[string]int) bool {
	if s.CouponCode == "" {
		s.DiscountPercent = 0
		return false
	}
	pct, ok := coupons[s.CouponCode]
	if !ok {
		s.DiscountPercent = 0
		return false
	}
	s.DiscountPercent = pct
	return true
}

// Clear resets the session to its initial shape.
func (s *State) Clear() {
	s.Items = []Item{}
	s.GiftWrapEnabled = false
	s.CouponCode = ""
	s.DiscountPercent = 0
}

func (s *State) ItemCount() int {
	count := 0
	for _, it := range s.Items {
		count += it.Quantity
	}
	return count
}

func (s *State) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range s.Items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return subtotal
}

func (s *State) IsEmpty() bool {
	return len(s.Items) == 0
}
