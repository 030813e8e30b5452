package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Joao-ahah/centro-artesanato-api/internal/cart"
	"github.com/Joao-ahah/centro-artesanato-api/internal/catalog"
	"github.com/Joao-ahah/centro-artesanato-api/internal/events"
	"github.com/Joao-ahah/centro-artesanato-api/internal/middleware"
	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
)

type CartHandler struct {
	sessions  *cart.Sessions
	products  catalog.Repository
	orders    order.Repository
	publisher events.OrderEventsPublisher
}

func NewCartHandler(sessions *cart.Sessions, products catalog.Repository, orders order.Repository, publisher events.OrderEventsPublisher) *CartHandler {
	return &CartHandler{sessions: sessions, products: products, orders: orders, publisher: publisher}
}

// cartResponse is the payload every cart endpoint returns: the state plus
// totals recomputed from it.
type cartResponse struct {
	OwnerID string      `json:"ownerId"`
	State   *cart.State `json:"cart"`
	Totals  cart.Totals `json:"totals"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	st, totals, err := h.sessions.Get(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem snapshots the product's current effective price into the cart; the
// cart never re-reads the catalog afterwards.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	p, err := h.products.Get(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0]
	}
	item, err := cart.NewItem(p.ID, p.Name, p.EffectivePrice(), req.Quantity, imageURL, p.Artisan)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	st, totals, err := h.sessions.AddItem(r.Context(), ownerID, item)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")
	productID := chi.URLParam(r, "productId")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	st, totals, err := h.sessions.UpdateQuantity(r.Context(), ownerID, productID, req.Quantity)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")
	productID := chi.URLParam(r, "productId")

	st, totals, err := h.sessions.RemoveItem(r.Context(), ownerID, productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

func (h *CartHandler) ToggleGiftWrap(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	st, totals, err := h.sessions.ToggleGiftWrap(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

type applyCouponResponse struct {
	cartResponse
	Applied bool `json:"applied"`
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	var req applyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	st, totals, applied, err := h.sessions.ApplyCoupon(r.Context(), ownerID, req.Code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, applyCouponResponse{
		cartResponse: cartResponse{OwnerID: ownerID, State: st, Totals: totals},
		Applied:      applied,
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")

	st, totals, err := h.sessions.Clear(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{OwnerID: ownerID, State: st, Totals: totals})
}

// Checkout freezes the session into an order, publishes OrderPlaced and
// clears the cart. An empty cart cannot be checked out.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerId")
	ctx := r.Context()

	st, totals, err := h.sessions.Get(ctx, ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if st.IsEmpty() {
		writeError(w, http.StatusNotFound, "cart is empty")
		return
	}

	o := order.FromCart(ownerID, st, totals)
	if err := h.orders.Create(ctx, o); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	meta := events.PublishMetadata{
		CorrelationID: middleware.GetCorrelationID(ctx),
		CausationID:   o.ID,
	}
	if err := h.publisher.PublishOrderPlaced(ctx, meta, o); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to publish order placed event")
		return
	}

	if _, _, err := h.sessions.Clear(ctx, ownerID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	writeJSON(w, http.StatusCreated, o)
}
