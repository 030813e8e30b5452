package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joao-ahah/centro-artesanato-api/internal/cart"
)

func TestSessionsPersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()
	sessions := cart.NewSessions(store, cart.DefaultPricing())

	_, _, err := sessions.AddItem(ctx, "owner-1", mustItem(t, "p1", "Vaso", "30.00", 2))
	require.NoError(t, err)

	// a second Sessions instance over the same store sees the saved state
	rehydrated := cart.NewSessions(store, cart.DefaultPricing())
	st, totals, err := rehydrated.Get(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, 2, st.Items[0].Quantity)
	assertAmount(t, "60.00", totals.Subtotal)
}

func TestSessionsGetUnknownOwnerReturnsEmptyState(t *testing.T) {
	ctx := context.Background()
	sessions := cart.NewSessions(cart.NewMemoryStore(), cart.DefaultPricing())

	st, totals, err := sessions.Get(ctx, "first-visit")
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assertAmount(t, "0", totals.Total)
}

func TestSessionsApplyCoupon(t *testing.T) {
	ctx := context.Background()
	sessions := cart.NewSessions(cart.NewMemoryStore(), cart.DefaultPricing())

	_, _, err := sessions.AddItem(ctx, "owner-1", mustItem(t, "p1", "Vaso", "100.00", 1))
	require.NoError(t, err)

	st, totals, applied, err := sessions.ApplyCoupon(ctx, "owner-1", "promo20")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "PROMO20", st.CouponCode)
	assertAmount(t, "20.00", totals.DiscountAmount)

	// unknown code resets the discount and still persists the state
	st, totals, applied, err = sessions.ApplyCoupon(ctx, "owner-1", "EXPIRED")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 0, st.DiscountPercent)
	assertAmount(t, "0", totals.DiscountAmount)
}

func TestSessionsClear(t *testing.T) {
	ctx := context.Background()
	sessions := cart.NewSessions(cart.NewMemoryStore(), cart.DefaultPricing())

	_, _, err := sessions.AddItem(ctx, "owner-1", mustItem(t, "p1", "Vaso", "30.00", 1))
	require.NoError(t, err)
	_, _, err = sessions.ToggleGiftWrap(ctx, "owner-1")
	require.NoError(t, err)

	st, totals, err := sessions.Clear(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, st.Items)
	assert.False(t, st.GiftWrapEnabled)
	assertAmount(t, "0", totals.Total)
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Save(context.Context, string, *cart.State) error {
	return f.saveErr
}

func (f *failingStore) Load(context.Context, string) (*cart.State, error) {
	return nil, f.loadErr
}

func TestSessionsPropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()

	loadFailed := errors.New("load failed")
	sessions := cart.NewSessions(&failingStore{loadErr: loadFailed}, cart.DefaultPricing())
	_, _, err := sessions.Get(ctx, "owner-1")
	require.ErrorIs(t, err, loadFailed)

	saveFailed := errors.New("save failed")
	sessions = cart.NewSessions(&failingStore{saveErr: saveFailed}, cart.DefaultPricing())
	_, _, err = sessions.AddItem(ctx, "owner-1", mustItem(t, "p1", "Vaso", "30.00", 1))
	require.ErrorIs(t, err, saveFailed)
}
