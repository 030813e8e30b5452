package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

// Stats is the aggregate view the back-office dashboard renders.
type Stats struct {
	TotalProducts      int `json:"totalProducts"`
	FeaturedProducts   int `json:"featuredProducts"`
	OutOfStockProducts int `json:"outOfStockProducts"`
	TotalOrders        int `json:"totalOrders"`
	PendingOrders      int `json:"pendingOrders"`
	TotalCustomers     int `json:"totalCustomers"`
	NewCustomers       int `json:"newCustomers"`
}

type ProductCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountFeatured(ctx context.Context) (int, error)
	CountOutOfStock(ctx context.Context) (int, error)
}

type OrderCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status order.Status) (int, error)
}

type CustomerCounter interface {
	CountAll(ctx context.Context) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

type Dashboard struct {
	products  ProductCounter
	orders    OrderCounter
	customers CustomerCounter
	now       func() time.Time
}

func NewDashboard(products ProductCounter, orders OrderCounter, customers CustomerCounter) *Dashboard {
	return &Dashboard{
		products:  products,
		orders:    orders,
		customers: customers,
		now:       time.Now,
	}
}

// Stats gathers the counters in one pass. New customers are those registered
// in the last thirty days.
func (d *Dashboard) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	var err error

	if s.TotalProducts, err = d.products.CountAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("count products: %w", err)
	}
	if s.FeaturedProducts, err = d.products.CountFeatured(ctx); err != nil {
		return Stats{}, fmt.Errorf("count featured products: %w", err)
	}
	if s.OutOfStockProducts, err = d.products.CountOutOfStock(ctx); err != nil {
		return Stats{}, fmt.Errorf("count out-of-stock products: %w", err)
	}
	if s.TotalOrders, err = d.orders.CountAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}
	if s.PendingOrders, err = d.orders.CountByStatus(ctx, order.StatusPending); err != nil {
		return Stats{}, fmt.Errorf("count pending orders: %w", err)
	}
	if s.TotalCustomers, err = d.customers.CountAll(ctx); err != nil {
		return Stats{}, fmt.Errorf("count customers: %w", err)
	}
	since := d.now().UTC().AddDate(0, 0, -30)
	if s.NewCustomers, err = d.customers.CountCreatedSince(ctx, since); err != nil {
		return Stats{}, fmt.Errorf("count new customers: %w", err)
	}

	return s, nil
}
