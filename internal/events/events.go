package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/libraops/library-service/internal/domain"
)

// Inventory event types published to the inventory topic.
const (
	TypeBookCreated    = "book.created"
	TypeCopiesAdjusted = "book.copies_adjusted"
	TypeBookDeleted    = "book.deleted"
)

// InventoryEvent records a change to the book inventory.
type InventoryEvent struct {
	EventID         string    `json:"event_id"`
	Type            string    `json:"type"`
	BookID          string    `json:"book_id"`
	Title           string    `json:"title"`
	Delta           int       `json:"delta,omitempty"`
	AvailableCopies int       `json:"available_copies"`
	Timestamp       time.Time `json:"timestamp"`
}

func NewBookCreated(book *domain.Book) InventoryEvent {
	return InventoryEvent{
		EventID:         uuid.NewString(),
		Type:            TypeBookCreated,
		BookID:          book.ID,
		Title:           book.Title,
		AvailableCopies: book.AvailableCopies,
		Timestamp:       time.Now(),
	}
}

func NewCopiesAdjusted(book *domain.Book, delta int) InventoryEvent {
	return InventoryEvent{
		EventID:         uuid.NewString(),
		Type:            TypeCopiesAdjusted,
		BookID:          book.ID,
		Title:           book.Title,
		Delta:           delta,
		AvailableCopies: book.AvailableCopies,
		Timestamp:       time.Now(),
	}
}

func NewBookDeleted(book *domain.Book) InventoryEvent {
	return InventoryEvent{
		EventID:   uuid.NewString(),
		Type:      TypeBookDeleted,
		BookID:    book.ID,
		Title:     book.Title,
		Timestamp: time.Now(),
	}
}

// Publisher is implemented by the Kafka producer. Services hold this
// interface so publishing can be switched off or faked in tests.
type Publisher interface {
	Publish(event InventoryEvent) error
	Close() error
}
