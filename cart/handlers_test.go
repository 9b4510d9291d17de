package cart

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"kedai/bookdata"
	"kedai/models"
	"kedai/orders"
	"kedai/store"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := orders.NewService(store.NewMemoryStore())
	t.Cleanup(svc.Close)
	return NewHandler(New(), bookdata.Defaults(), svc, nil, 0)
}

const validDetails = `{"name":"Aisyah","email":"aisyah@example.com","phone":"0123456789","address":"12 Jalan Besar"}`

func TestAddToCartHandler(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader(`{"id":"1"}`))
	h.AddToCart(w, r, nil)

	if w.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var state cartState
	if err := json.Unmarshal(w.Body.Bytes(), &state); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 || state.Total != 5 {
		t.Fatalf("unexpected cart state: %+v", state)
	}
}

func TestAddToCartUnknownBook(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader(`{"id":"999"}`))
	h.AddToCart(w, r, nil)

	if w.Code != 404 {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCheckoutSnapshotsCartAndClears(t *testing.T) {
	h := newTestHandler(t)
	h.Cart.AddItem(h.Catalog[0])
	h.Cart.AddItem(h.Catalog[0])

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(validDetails))
	h.Checkout(w, r, nil)

	if w.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var order models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if order.ID == "" || order.Total != 10 || len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.CustomerDetails.Name != "Aisyah" {
		t.Fatalf("customer details not copied: %+v", order.CustomerDetails)
	}

	// cart cleared only after the order was persisted
	if len(h.Cart.Items()) != 0 || h.Cart.Total() != 0 {
		t.Fatal("expected empty cart after checkout")
	}
	list, err := h.Orders.Orders(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != order.ID {
		t.Fatalf("expected the order in the log, got %+v", list)
	}

	// later cart activity must not leak into the stored snapshot
	h.Cart.AddItem(h.Catalog[0])
	h.Cart.UpdateQuantity(h.Catalog[0].ID, 7)
	stored, err := h.Orders.Get(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Items[0].Quantity != 2 || stored.Total != 10 {
		t.Fatalf("stored order mutated by later cart activity: %+v", stored)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(validDetails))
	h.Checkout(w, r, nil)

	if w.Code != 400 {
		t.Fatalf("expected 400 for empty cart, got %d", w.Code)
	}
}

func TestCheckoutMissingFields(t *testing.T) {
	h := newTestHandler(t)
	h.Cart.AddItem(h.Catalog[0])

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(`{"name":"Aisyah","email":"","phone":"0123456789","address":"12 Jalan Besar"}`))
	h.Checkout(w, r, nil)

	if w.Code != 400 {
		t.Fatalf("expected 400 for missing field, got %d", w.Code)
	}
	list, err := h.Orders.Orders(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("no order may be created on validation failure, got %d", len(list))
	}
	if len(h.Cart.Items()) != 1 {
		t.Fatal("cart must be untouched on validation failure")
	}
}

func TestCheckoutTwiceCreatesTwoOrders(t *testing.T) {
	h := newTestHandler(t)

	for i := 0; i < 2; i++ {
		h.Cart.AddItem(h.Catalog[0])
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(validDetails))
		h.Checkout(w, r, nil)
		if w.Code != 201 {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	}

	list, err := h.Orders.Orders(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("repeated checkout must create separate orders, got %d", len(list))
	}
	if list[0].ID == list[1].ID {
		t.Fatal("orders must have distinct ids")
	}
}
