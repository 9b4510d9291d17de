// Package inventory is the admin-side catalog: a persisted replica of the
// seed data that diverges from the read-only shopper catalog once edited.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"kedai/models"
	"kedai/store"

	"github.com/google/uuid"
)

var ErrBookNotFound = errors.New("book not found")

// restockLeadTime is how far out the auto-assigned expected-restock date is
// placed when stock hits zero.
const restockLeadTime = 30 * 24 * time.Hour

// Service owns the persisted books collection. Mutations are
// load-modify-save under one mutex; a single writer is enough here because
// admin edits are synchronous UI actions.
type Service struct {
	mu    sync.Mutex
	store store.Store
	now   func() time.Time
}

func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Seed writes the default catalog if the books collection has never been
// saved. Existing data is left alone.
func (s *Service) Seed(ctx context.Context, defaults []models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []models.Book
	err := s.store.Load(ctx, store.BooksCollection, &existing)
	if err == nil {
		return nil
	}
	if err != store.ErrNotFound {
		return err
	}
	return s.store.Save(ctx, store.BooksCollection, defaults)
}

// Books returns the persisted catalog.
func (s *Service) Books(ctx context.Context) ([]models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Service) load(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := s.store.Load(ctx, store.BooksCollection, &books)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return books, nil
}

// UpdateStock sets a book's inventory count and maintains the restock-date
// invariant: zero stock with no expected date gets one 30 days out, positive
// stock clears any date.
func (s *Service) UpdateStock(ctx context.Context, id string, count int) (models.Book, error) {
	if count < 0 {
		return models.Book{}, fmt.Errorf("stock count must be non-negative, got %d", count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return models.Book{}, err
	}
	for i := range books {
		if books[i].ID != id {
			continue
		}
		books[i].Inventory = count
		if count == 0 && books[i].ExpectedDate == "" {
			books[i].ExpectedDate = s.now().Add(restockLeadTime).Format("2006-01-02")
		}
		if count > 0 {
			books[i].ExpectedDate = ""
		}
		if err := s.store.Save(ctx, store.BooksCollection, books); err != nil {
			return models.Book{}, err
		}
		return books[i], nil
	}
	return models.Book{}, ErrBookNotFound
}

// SaveBook upserts a catalog entry by id. A book without an id is treated as
// new and gets one assigned. There is no delete.
func (s *Service) SaveBook(ctx context.Context, book models.Book) (models.Book, error) {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	books, err := s.load(ctx)
	if err != nil {
		return models.Book{}, err
	}
	replaced := false
	for i := range books {
		if books[i].ID == book.ID {
			books[i] = book
			replaced = true
			break
		}
	}
	if !replaced {
		books = append(books, book)
	}
	if err := s.store.Save(ctx, store.BooksCollection, books); err != nil {
		return models.Book{}, err
	}
	return book, nil
}
