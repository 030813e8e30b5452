package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joao-ahah/centro-artesanato-api/internal/admin"
	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

type stubProducts struct{ all, featured, outOfStock int }

func (s stubProducts) CountAll(context.Context) (int, error)        { return s.all, nil }
func (s stubProducts) CountFeatured(context.Context) (int, error)   { return s.featured, nil }
func (s stubProducts) CountOutOfStock(context.Context) (int, error) { return s.outOfStock, nil }

type stubOrders struct {
	all, pending int
	err          error
}

func (s stubOrders) CountAll(context.Context) (int, error) { return s.all, s.err }
func (s stubOrders) CountByStatus(_ context.Context, status order.Status) (int, error) {
	if status != order.StatusPending {
		return 0, errors.New("unexpected status")
	}
	return s.pending, nil
}

type stubCustomers struct{ all, recent int }

func (s stubCustomers) CountAll(context.Context) (int, error) { return s.all, nil }
func (s stubCustomers) CountCreatedSince(context.Context, time.Time) (int, error) {
	return s.recent, nil
}

func TestDashboardStats(t *testing.T) {
	d := admin.NewDashboard(
		stubProducts{all: 35, featured: 6, outOfStock: 3},
		stubOrders{all: 124, pending: 12},
		stubCustomers{all: 80, recent: 28},
	)

	stats, err := d.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, admin.Stats{
		TotalProducts:      35,
		FeaturedProducts:   6,
		OutOfStockProducts: 3,
		TotalOrders:        124,
		PendingOrders:      12,
		TotalCustomers:     80,
		NewCustomers:       28,
	}, stats)
}

func TestDashboardStatsPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	d := admin.NewDashboard(stubProducts{}, stubOrders{err: boom}, stubCustomers{})

	_, err := d.Stats(context.Background())
	require.ErrorIs(t, err, boom)
}
