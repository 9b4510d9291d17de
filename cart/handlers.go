package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"kedai/live"
	"kedai/models"
	"kedai/orders"
	"kedai/utils"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

// Handler exposes the cart and checkout surface. Catalog is the read-only
// shopper catalog; add-to-cart snapshots entries from it.
type Handler struct {
	Cart    *Cart
	Catalog []models.Book
	Orders  *orders.Service
	Hub     *live.Hub
	Delay   time.Duration // simulated checkout processing time
}

func NewHandler(c *Cart, catalog []models.Book, svc *orders.Service, hub *live.Hub, delay time.Duration) *Handler {
	return &Handler{Cart: c, Catalog: catalog, Orders: svc, Hub: hub, Delay: delay}
}

type cartState struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

func (h *Handler) state() cartState {
	items, total := h.Cart.Snapshot()
	return cartState{Items: items, Total: total}
}

// GetCart returns the current cart items and total.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.state())
}

// AddToCart adds one copy of a catalog book to the cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.ID == "" {
		http.Error(w, "Missing book id", http.StatusBadRequest)
		return
	}

	for _, book := range h.Catalog {
		if book.ID == payload.ID {
			h.Cart.AddItem(book)
			utils.RespondWithJSON(w, http.StatusCreated, h.state())
			return
		}
	}
	http.Error(w, "Book not found", http.StatusNotFound)
}

// UpdateQuantity sets a line item's quantity. Negative values clamp to zero;
// a zero quantity keeps the row.
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateQuantity decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Quantity < 0 {
		payload.Quantity = 0
	}

	if !h.Cart.UpdateQuantity(ps.ByName("id"), payload.Quantity) {
		http.Error(w, "Item not in cart", http.StatusNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, h.state())
}

// RemoveItem deletes a line item. Unknown ids are a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.Cart.RemoveItem(ps.ByName("id"))
	utils.RespondWithJSON(w, http.StatusOK, h.state())
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.Cart.Clear()
	utils.RespondWithJSON(w, http.StatusOK, h.state())
}

// Checkout snapshots the cart into an immutable order. The order is
// persisted before the processing delay and before the cart is cleared; a
// failure in between leaves a stale cart but never a lost order. Repeating
// the request creates a second order; there is no duplicate guard.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var details models.CustomerDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		log.Println("Checkout decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if details.Name == "" || details.Email == "" || details.Phone == "" || details.Address == "" {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	items, total := h.Cart.Snapshot()
	if len(items) == 0 {
		http.Error(w, "Cart is empty", http.StatusBadRequest)
		return
	}

	order := models.Order{
		ID:              uuid.NewString(),
		Items:           items,
		Total:           total,
		CustomerDetails: details,
		Date:            time.Now().UTC(),
	}

	if err := h.Orders.Place(ctx, order); err != nil {
		log.Println("Checkout place error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	time.Sleep(h.Delay)
	h.Cart.Clear()

	if h.Hub != nil {
		h.Hub.OrderPlaced(order)
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}
