package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidProduct = errors.New("invalid product")

type Product struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	PromoPrice  decimal.NullDecimal `json:"promoPrice,omitempty"`
	Category    string              `json:"category"`
	Quantity    int                 `json:"quantity"`
	Featured    bool                `json:"featured"`
	Available   bool                `json:"available"`
	Images      []string            `json:"images"`
	Artisan     string              `json:"artisan,omitempty"`
	Technique   string              `json:"technique,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// EffectivePrice is the amount the cart snapshots: the promotional price when
// one is set below the regular price, otherwise the regular price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PromoPrice.Valid && p.PromoPrice.Decimal.IsPositive() && p.PromoPrice.Decimal.LessThan(p.Price) {
		return p.PromoPrice.Decimal
	}
	return p.Price
}

// Validate enforces the required fields for create/update: name, description
// and category present, a positive price and at least one image.
func (p Product) Validate() error {
	switch {
	case p.Name == "":
		return errors.Join(ErrInvalidProduct, errors.New("name is required"))
	case p.Description == "":
		return errors.Join(ErrInvalidProduct, errors.New("description is required"))
	case p.Category == "":
		return errors.Join(ErrInvalidProduct, errors.New("category is required"))
	case !p.Price.IsPositive():
		return errors.Join(ErrInvalidProduct, errors.New("price must be positive"))
	case len(p.Images) == 0:
		return errors.Join(ErrInvalidProduct, errors.New("at least one image is required"))
	case p.Quantity < 0:
		return errors.Join(ErrInvalidProduct, errors.New("quantity cannot be negative"))
	}
	return nil
}

// Filter narrows List results. Page is 1-based; a zero Limit falls back to
// the default page size.
type Filter struct {
	Category     string
	FeaturedOnly bool
	Page         int
	Limit        int
}

const defaultPageSize = 10

func (f Filter) limit() int {
	if f.Limit <= 0 {
		return defaultPageSize
	}
	return f.Limit
}

func (f Filter) offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.limit()
}
