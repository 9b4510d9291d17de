package inventory

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"kedai/models"
	"kedai/orders"
	"kedai/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the admin surface: inventory edits plus the admin view of
// the order log.
type Handler struct {
	Svc    *Service
	Orders *orders.Service
}

func NewHandler(svc *Service, orderSvc *orders.Service) *Handler {
	return &Handler{Svc: svc, Orders: orderSvc}
}

// GetBooks returns the persisted admin catalog.
func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	books, err := h.Svc.Books(ctx)
	if err != nil {
		log.Println("GetBooks load error:", err)
		http.Error(w, "Could not retrieve books", http.StatusInternalServerError)
		return
	}
	if len(books) == 0 {
		books = []models.Book{}
	}
	utils.RespondWithJSON(w, http.StatusOK, books)
}

// UpdateStock sets a book's inventory count.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload struct {
		Inventory int `json:"inventory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateStock decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Inventory < 0 {
		http.Error(w, "Stock count must be non-negative", http.StatusBadRequest)
		return
	}

	book, err := h.Svc.UpdateStock(ctx, ps.ByName("id"), payload.Inventory)
	switch err {
	case nil:
	case ErrBookNotFound:
		http.Error(w, "Book not found", http.StatusNotFound)
		return
	default:
		log.Println("UpdateStock error:", err)
		http.Error(w, "Failed to update stock", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, book)
}

// SaveBook upserts a catalog entry.
func (h *Handler) SaveBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		log.Println("SaveBook decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if book.Title == "" || book.Author == "" || book.Price < 0 || book.Inventory < 0 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	saved, err := h.Svc.SaveBook(ctx, book)
	if err != nil {
		log.Println("SaveBook error:", err)
		http.Error(w, "Failed to save book", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, saved)
}

// GetOrders is the admin view of the order log.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := h.Orders.Orders(ctx)
	if err != nil {
		log.Println("Admin GetOrders load error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}
