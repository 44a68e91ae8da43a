package domain

import (
	"strings"
	"time"
)

// Book is a catalog entry with copy-count inventory semantics.
// CategoryLC mirrors Category in lower case so the store can run
// case-insensitive substring filters without a full-text index.
type Book struct {
	ID              string    `dynamodbav:"book_id"          json:"id"`
	Title           string    `dynamodbav:"title"            json:"title"`
	Author          string    `dynamodbav:"author"           json:"author"`
	Category        string    `dynamodbav:"category"         json:"category"`
	CategoryLC      string    `dynamodbav:"category_lc"      json:"-"`
	PublishedYear   int       `dynamodbav:"published_year"   json:"publishedYear"`
	AvailableCopies int       `dynamodbav:"available_copies" json:"availableCopies"`
	CreatedAt       time.Time `dynamodbav:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time `dynamodbav:"updated_at"       json:"updatedAt"`
}

// SetCategory updates the category together with its lower-cased shadow.
func (b *Book) SetCategory(category string) {
	b.Category = category
	b.CategoryLC = strings.ToLower(category)
}

// CreateBookRequest carries the client payload for POST /books.
// Numeric fields are pointers so "field absent" is distinguishable
// from a legitimate zero value.
type CreateBookRequest struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	PublishedYear   *int   `json:"publishedYear"`
	AvailableCopies *int   `json:"availableCopies"`
}

// AdjustCopiesRequest carries the payload for PATCH /books/:id/copies.
// Quantity is decoded as a float so a non-integer value can be reported
// as such instead of failing JSON binding with a generic message.
type AdjustCopiesRequest struct {
	Quantity *float64 `json:"quantity"`
}

// UpdateCategoryRequest carries the payload for PATCH /books/:id/category.
type UpdateCategoryRequest struct {
	Category string `json:"category"`
}

// UpdateBookRequest carries the partial payload for PUT /books/:id.
// Only non-nil fields are applied.
type UpdateBookRequest struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublishedYear   *int    `json:"publishedYear"`
	AvailableCopies *int    `json:"availableCopies"`
}

// BookResponse wraps a single mutated book with a confirmation message.
type BookResponse struct {
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}

// BookListResponse is the envelope for GET /books.
type BookListResponse struct {
	Count int    `json:"count"`
	Books []Book `json:"books"`
}

// CategorySearchResponse echoes the query alongside the matches.
type CategorySearchResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Books    []Book `json:"books"`
}

// YearSearchResponse echoes the boundary year alongside the matches.
type YearSearchResponse struct {
	SearchYear int    `json:"searchYear"`
	Count      int    `json:"count"`
	Books      []Book `json:"books"`
}

// DeleteBookResponse returns the snapshot of the removed record.
type DeleteBookResponse struct {
	Message     string `json:"message"`
	DeletedBook *Book  `json:"deletedBook"`
}
