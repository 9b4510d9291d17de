package models

import "time"

// Book is a single catalog entry. ExpectedDate is a date-only string
// (YYYY-MM-DD) and is present only while the book is out of stock.
type Book struct {
	ID           string  `json:"id" bson:"id" yaml:"id"`
	Title        string  `json:"title" bson:"title" yaml:"title"`
	Author       string  `json:"author" bson:"author" yaml:"author"`
	Price        float64 `json:"price" bson:"price" yaml:"price"`
	Category     string  `json:"category" bson:"category" yaml:"category"`
	Image        string  `json:"image" bson:"image" yaml:"image"`
	Inventory    int     `json:"inventory" bson:"inventory" yaml:"inventory"`
	ExpectedDate string  `json:"expectedDate,omitempty" bson:"expectedDate,omitempty" yaml:"expectedDate,omitempty"`
}

// CartItem is a book snapshot taken at add-time plus the cart-local fields.
// The book fields are copied, not referenced, so later catalog edits do not
// bleed into an open cart.
type CartItem struct {
	Book       `bson:",inline" yaml:",inline"`
	Quantity   int  `json:"quantity" bson:"quantity"`
	IsPreOrder bool `json:"isPreOrder,omitempty" bson:"isPreOrder,omitempty"`
}

// CustomerDetails is the shipping information collected at checkout.
// All four fields are required.
type CustomerDetails struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

// Order is a finalized checkout snapshot. Items, Total, CustomerDetails and
// Date are fixed at creation; only AttachedImages may change afterwards, via
// the order service's attach/remove operations.
type Order struct {
	ID              string          `json:"id" bson:"id"`
	Items           []CartItem      `json:"items" bson:"items"`
	Total           float64         `json:"total" bson:"total"`
	CustomerDetails CustomerDetails `json:"customerDetails" bson:"customerDetails"`
	Date            time.Time       `json:"date" bson:"date"`
	AttachedImages  []string        `json:"attachedImages,omitempty" bson:"attachedImages,omitempty"`
}

// Valid reports whether a persisted order passes minimal shape validation:
// customer details must be present. Records that fail are dropped from the
// visible log, never repaired.
func (o Order) Valid() bool {
	return o.CustomerDetails != (CustomerDetails{})
}
