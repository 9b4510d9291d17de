// Package store is the persistence boundary. State lives in named
// collections, each serialized as a single JSON blob; every mutation is a
// full read-modify-write of the whole collection, so the last writer to
// finish its rewrite wins. Callers that need ordering serialize their own
// writes (see the orders service).
package store

import (
	"context"
	"errors"
)

// Collection names used by the application.
const (
	BooksCollection  = "books"
	OrdersCollection = "orders"
)

var (
	// ErrNotFound is returned by Load when the collection has never been
	// saved. Callers use it to trigger seeding.
	ErrNotFound = errors.New("collection not found")
)

// Store reads and writes whole collections.
type Store interface {
	// Load unmarshals the named collection into out.
	Load(ctx context.Context, collection string, out interface{}) error
	// Save replaces the named collection with v.
	Save(ctx context.Context, collection string, v interface{}) error
}
