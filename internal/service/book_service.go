package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/events"
	"github.com/libraops/library-service/internal/repository"
)

// minPublishedYear is the oldest publication year the catalog accepts.
const minPublishedYear = 1000

// BookStore is the persistence surface the book service needs. It is
// implemented by repository.BookRepository and by in-memory fakes in tests.
type BookStore interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Book, error)
	ListAfterYear(ctx context.Context, year int) ([]domain.Book, error)
	AdjustCopies(ctx context.Context, id string, delta int) (updated *domain.Book, previous int, err error)
	UpdateCategory(ctx context.Context, id, category string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) (*domain.Book, error)
}

type BookService struct {
	books     BookStore
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookService wires the book service. publisher may be nil, in which
// case inventory events are not emitted.
func NewBookService(books BookStore, publisher events.Publisher, logger *zap.Logger) *BookService {
	return &BookService{
		books:     books,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates and stores a new book. All five fields are required;
// copies must be non-negative and the year must fall in
// [1000, current year].
func (s *BookService) Create(ctx context.Context, req domain.CreateBookRequest) (*domain.Book, error) {
	if req.Title == "" || req.Author == "" || req.Category == "" ||
		req.PublishedYear == nil || req.AvailableCopies == nil {
		return nil, newValidationError(
			"All fields are required (title, author, category, publishedYear, availableCopies)")
	}

	if *req.AvailableCopies < 0 {
		return nil, newValidationError("Available copies cannot be negative")
	}

	if msgs := validateYear(*req.PublishedYear); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	now := time.Now()
	book := &domain.Book{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Author:          req.Author,
		PublishedYear:   *req.PublishedYear,
		AvailableCopies: *req.AvailableCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	book.SetCategory(req.Category)

	if err := s.books.Create(ctx, book); err != nil {
		s.logger.Error("Failed to save book",
			zap.String("book_id", book.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Book created",
		zap.String("book_id", book.ID),
		zap.String("title", book.Title),
		zap.Int("available_copies", book.AvailableCopies))

	s.publish(events.NewBookCreated(book))

	return book, nil
}

// ListAll returns every book, newest first.
func (s *BookService) ListAll(ctx context.Context) ([]domain.Book, error) {
	books, err := s.books.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})

	return books, nil
}

// ListByCategory returns books whose category contains the query,
// case-insensitively. Zero matches is an error so the caller can answer 404.
func (s *BookService) ListByCategory(ctx context.Context, category string) ([]domain.Book, error) {
	books, err := s.books.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		return nil, ErrNoMatches
	}

	return books, nil
}

// ListAfterYear returns books published strictly after year, most recent
// publication first.
func (s *BookService) ListAfterYear(ctx context.Context, year int) ([]domain.Book, error) {
	books, err := s.books.ListAfterYear(ctx, year)
	if err != nil {
		return nil, err
	}

	if len(books) == 0 {
		return nil, ErrNoMatches
	}

	sort.Slice(books, func(i, j int) bool {
		return books[i].PublishedYear > books[j].PublishedYear
	})

	return books, nil
}

func (s *BookService) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidBookID
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	return book, nil
}

// AdjustCopies applies delta to the book's available copies. The store
// enforces the zero floor atomically; a rejected reduction leaves the
// record untouched.
func (s *BookService) AdjustCopies(ctx context.Context, id string, delta int) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidBookID
	}

	book, previous, err := s.books.AdjustCopies(ctx, id, delta)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		if errors.Is(err, repository.ErrInsufficientCopies) {
			return nil, newValidationError(fmt.Sprintf(
				"Cannot reduce copies below 0. Current: %d, Reduction: %d", previous, -delta))
		}
		return nil, err
	}

	s.logger.Info("Copies adjusted",
		zap.String("book_id", id),
		zap.Int("previous", previous),
		zap.Int("delta", delta),
		zap.Int("available_copies", book.AvailableCopies))

	s.publish(events.NewCopiesAdjusted(book, delta))

	return book, nil
}

// UpdateCategory replaces only the category field.
func (s *BookService) UpdateCategory(ctx context.Context, id, category string) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidBookID
	}

	if category == "" {
		return nil, newValidationError("New category is required")
	}

	book, err := s.books.UpdateCategory(ctx, id, category)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.logger.Info("Category updated",
		zap.String("book_id", id),
		zap.String("category", category))

	return book, nil
}

// UpdateDetails merges the non-nil fields of req into the stored book,
// re-validating every constrained field before writing.
func (s *BookService) UpdateDetails(ctx context.Context, id string, req domain.UpdateBookRequest) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidBookID
	}

	if req.AvailableCopies != nil && *req.AvailableCopies < 0 {
		return nil, newValidationError("Available copies cannot be negative")
	}

	book, err := s.books.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.PublishedYear != nil {
		book.PublishedYear = *req.PublishedYear
	}
	if req.AvailableCopies != nil {
		book.AvailableCopies = *req.AvailableCopies
	}

	var msgs []string
	if book.Title == "" {
		msgs = append(msgs, "Book title is required")
	}
	if book.Author == "" {
		msgs = append(msgs, "Author name is required")
	}
	msgs = append(msgs, validateYear(book.PublishedYear)...)
	if len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	book.UpdatedAt = time.Now()

	if err := s.books.Update(ctx, book); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.logger.Info("Book updated", zap.String("book_id", id))

	return book, nil
}

// Delete removes a book. The store rejects the delete unless the copy
// count is zero at that moment.
func (s *BookService) Delete(ctx context.Context, id string) (*domain.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidBookID
	}

	book, err := s.books.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			return nil, ErrBookNotFound
		}
		if errors.Is(err, repository.ErrBookHasCopies) {
			return nil, newValidationError(fmt.Sprintf(
				"Cannot delete book. Available copies: %d. Please reduce to 0 first.", book.AvailableCopies))
		}
		return nil, err
	}

	s.logger.Info("Book deleted",
		zap.String("book_id", id),
		zap.String("title", book.Title))

	s.publish(events.NewBookDeleted(book))

	return book, nil
}

// publish sends an inventory event when a publisher is configured.
// Publishing failures are logged by the producer and never fail the
// request that triggered them.
func (s *BookService) publish(event events.InventoryEvent) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(event)
}

func validateYear(year int) []string {
	var msgs []string
	if year < minPublishedYear {
		msgs = append(msgs, "Published year must be valid")
	}
	if year > time.Now().Year() {
		msgs = append(msgs, "Published year cannot be in the future")
	}
	return msgs
}
