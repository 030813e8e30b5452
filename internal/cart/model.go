package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyProductID = errors.New("product id is required")
	ErrInvalidPrice   = errors.New("unit price must be positive")
	ErrInvalidQty     = errors.New("quantity must be at least 1")
)

// Item is one line in the cart. Name, price and image are snapshots taken
// from the catalog when the item was added; they are not re-fetched later.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Artisan   string          `json:"artisan,omitempty"`
}

// NewItem validates the snapshot before it enters the cart.
func NewItem(productID, name string, unitPrice decimal.Decimal, quantity int, imageURL, artisan string) (Item, error) {
	if productID == "" {
		return Item{}, ErrEmptyProductID
	}
	if !unitPrice.IsPositive() {
		return Item{}, ErrInvalidPrice
	}
	if quantity < 1 {
		return Item{}, ErrInvalidQty
	}
	return Item{
		ProductID: productID,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		ImageURL:  imageURL,
		Artisan:   artisan,
	}, nil
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// State is everything a browsing session carries between requests. One owner,
// one state; it is loaded, mutated and saved back on every operation.
type State struct {
	Items           []Item `json:"items"`
	GiftWrapEnabled bool   `json:"giftWrapEnabled"`
	CouponCode      string `json:"couponCode"`
	DiscountPercent int    `json:"discountPercent"`
}

func NewState() *State {
	return &State{Items: []Item{}}
}
