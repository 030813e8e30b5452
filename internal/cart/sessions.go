package cart

import (
	"context"
	"fmt"
)

// Sessions wires the pricing engine to the storage port: every operation
// loads the owner's state, mutates it, saves it back and returns the state
// together with freshly computed totals.
type Sessions struct {
	store   Store
	pricing Pricing
}

func NewSessions(store Store, pricing Pricing) *Sessions {
	return &Sessions{store: store, pricing: pricing}
}

func (s *Sessions) Pricing() Pricing {
	return s.pricing
}

// Get never fails on an unknown owner; a fresh empty state is returned so
// the first visit sees an empty cart.
func (s *Sessions) Get(ctx context.Context, owner string) (*State, Totals, error) {
	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, Totals{}, err
	}
	return st, s.pricing.TotalsFor(st), nil
}

func (s *Sessions) AddItem(ctx context.Context, owner string, item Item) (*State, Totals, error) {
	return s.mutate(ctx, owner, func(st *State) {
		st.AddItem(item)
	})
}

func (s *Sessions) RemoveItem(ctx context.Context, owner, productID string) (*State, Totals, error) {
	return s.mutate(ctx, owner, func(st *State) {
		st.RemoveItem(productID)
	})
}

func (s *Sessions) UpdateQuantity(ctx context.Context, owner, productID string, quantity int) (*State, Totals, error) {
	return s.mutate(ctx, owner, func(st *State) {
		st.UpdateQuantity(productID, quantity)
	})
}

func (s *Sessions) ToggleGiftWrap(ctx context.Context, owner string) (*State, Totals, error) {
	return s.mutate(ctx, owner, func(st *State) {
		st.ToggleGiftWrap()
	})
}

// ApplyCoupon stores the candidate code and resolves it in one step. The
// boolean reports whether the code was recognized.
func (s *Sessions) ApplyCoupon(ctx context.Context, owner, code string) (*State, Totals, bool, error) {
	applied := false
	st, totals, err := s.mutate(ctx, owner, func(st *State) {
		st.SetCouponCode(code)
		applied = st.ApplyCoupon(s.pricing.Coupons)
	})
	return st, totals, applied, err
}

func (s *Sessions) Clear(ctx context.Context, owner string) (*State, Totals, error) {
	return s.mutate(ctx, owner, func(st *State) {
		st.Clear()
	})
}

func (s *Sessions) mutate(ctx context.Context, owner string, fn func(*State)) (*State, Totals, error) {
	st, err := s.load(ctx, owner)
	if err != nil {
		return nil, Totals{}, err
	}

	fn(st)

	if err := s.store.Save(ctx, owner, st); err != nil {
		return nil, Totals{}, fmt.Errorf("save cart session: %w", err)
	}
	return st, s.pricing.TotalsFor(st), nil
}

func (s *Sessions) load(ctx context.Context, owner string) (*State, error) {
	st, err := s.store.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load cart session: %w", err)
	}
	if st == nil {
		st = NewState()
	}
	return st, nil
}
