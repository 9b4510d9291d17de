// Package books is the shopper-facing catalog surface. It serves the
// read-only seed catalog; admin edits live in the inventory store and do not
// reach it.
package books

import (
	"encoding/json"
	"net/http"
	"time"

	"kedai/models"
	"kedai/rdx"
	"kedai/utils"

	"github.com/julienschmidt/httprouter"
)

const cacheTTL = 10 * time.Minute

type Handler struct {
	Catalog []models.Book
}

func NewHandler(catalog []models.Book) *Handler {
	return &Handler{Catalog: catalog}
}

// GetBooks lists the catalog, optionally filtered by ?category=. Responses
// are cached in Redis when available.
func (h *Handler) GetBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	category := r.URL.Query().Get("category")
	cacheKey := "books:" + category

	if cached, _ := rdx.RdxGet(cacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	filtered := []models.Book{}
	for _, book := range h.Catalog {
		if category == "" || book.Category == category {
			filtered = append(filtered, book)
		}
	}

	if data, err := json.Marshal(filtered); err == nil {
		rdx.RdxSet(cacheKey, string(data), cacheTTL)
	}
	utils.RespondWithJSON(w, http.StatusOK, filtered)
}

// GetBook returns a single catalog entry.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	for _, book := range h.Catalog {
		if book.ID == id {
			utils.RespondWithJSON(w, http.StatusOK, book)
			return
		}
	}
	http.Error(w, "Book not found", http.StatusNotFound)
}
