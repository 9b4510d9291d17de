// Package bookdata holds the static catalog seed. The shopper-facing catalog
// serves this slice directly; the admin inventory store is seeded from it
// once and diverges from there.
package bookdata

import (
	"fmt"
	"os"

	"kedai/models"

	"gopkg.in/yaml.v3"
)

var defaultBooks = []models.Book{
	{ID: "1", Title: "Ruhi Book 1", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-1.jpg", Inventory: 48},
	{ID: "2", Title: "Ruhi Book 2", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-2.jpg", Inventory: 48},
	{ID: "3", Title: "Ruhi Book 3", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-3.jpg", Inventory: 42},
	{ID: "4", Title: "Ruhi Book 4", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-4.jpg", Inventory: 70},
	{ID: "5", Title: "Ruhi Book 5", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-5.jpg", Inventory: 44},
	{ID: "6", Title: "Ruhi Book 6", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (EN)", Image: "/bookpic/ruhi-en-6.jpg", Inventory: 81},
	{ID: "7", Title: "Ruhi Book 1", Author: "Ruhi Institute", Price: 5, Category: "Ruhi Book (BM)", Image: "/bookpic/ruhi-bm-1.jpg", Inventory: 86},
}

// Defaults returns a copy of the built-in catalog seed.
func Defaults() []models.Book {
	out := make([]models.Book, len(defaultBooks))
	copy(out, defaultBooks)
	return out
}

// LoadSeed reads a YAML seed file and returns its books. The file replaces
// the built-in defaults wholesale.
func LoadSeed(path string) ([]models.Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var books []models.Book
	if err := yaml.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return books, nil
}
