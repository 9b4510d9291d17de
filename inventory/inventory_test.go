package inventory

import (
	"context"
	"testing"
	"time"

	"kedai/bookdata"
	"kedai/models"
	"kedai/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(store.NewMemoryStore())
	if err := svc.Seed(context.Background(), bookdata.Defaults()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return svc
}

func TestSeedOnlyWhenAbsent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.UpdateStock(ctx, "1", 99); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// second seed must not clobber the edit
	if err := svc.Seed(ctx, bookdata.Defaults()); err != nil {
		t.Fatalf("reseed failed: %v", err)
	}
	books, err := svc.Books(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if books[0].Inventory != 99 {
		t.Fatalf("reseed overwrote existing data: %+v", books[0])
	}
}

func TestUpdateStockZeroSetsExpectedDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	book, err := svc.UpdateStock(ctx, "1", 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if book.Inventory != 0 {
		t.Fatalf("expected inventory 0, got %d", book.Inventory)
	}
	if book.ExpectedDate != "2026-03-31" {
		t.Fatalf("expected restock date 30 days out, got %q", book.ExpectedDate)
	}
}

func TestUpdateStockZeroKeepsExistingDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.SaveBook(ctx, models.Book{ID: "x", Title: "T", Author: "A", Price: 5, ExpectedDate: "2026-01-15"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	book, err := svc.UpdateStock(ctx, "x", 0)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if book.ExpectedDate != "2026-01-15" {
		t.Fatalf("existing restock date must be preserved, got %q", book.ExpectedDate)
	}
}

func TestUpdateStockPositiveClearsExpectedDate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.UpdateStock(ctx, "1", 0); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	book, err := svc.UpdateStock(ctx, "1", 12)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if book.Inventory != 12 || book.ExpectedDate != "" {
		t.Fatalf("positive stock must clear restock date, got %+v", book)
	}
}

func TestUpdateStockUnknownBook(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.UpdateStock(context.Background(), "nope", 5); err != ErrBookNotFound {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestUpdateStockNegative(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.UpdateStock(context.Background(), "1", -1); err == nil {
		t.Fatal("expected error for negative stock")
	}
}

func TestSaveBookReplacesExisting(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	edited := models.Book{ID: "1", Title: "Ruhi Book 1 (2nd ed.)", Author: "Ruhi Institute", Price: 6, Category: "Ruhi Book (EN)", Inventory: 10}
	if _, err := svc.SaveBook(ctx, edited); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	books, err := svc.Books(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(books) != len(bookdata.Defaults()) {
		t.Fatalf("upsert of existing id must not grow the catalog, got %d entries", len(books))
	}
	if books[0].Title != "Ruhi Book 1 (2nd ed.)" || books[0].Price != 6 {
		t.Fatalf("entry not replaced: %+v", books[0])
	}
}

func TestSaveBookAppendsNew(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	before := len(bookdata.Defaults())

	saved, err := svc.SaveBook(ctx, models.Book{Title: "New Book", Author: "Someone", Price: 8, Inventory: 3})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("new book must get an id assigned")
	}

	books, err := svc.Books(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(books) != before+1 {
		t.Fatalf("expected %d entries, got %d", before+1, len(books))
	}
	if books[len(books)-1].ID != saved.ID {
		t.Fatalf("new entry must be appended, got %+v", books[len(books)-1])
	}
}
