package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/repository"
	"github.com/libraops/library-service/internal/service"
)

type memBookStore struct {
	books map[string]domain.Book
}

func newMemBookStore() *memBookStore {
	return &memBookStore{books: make(map[string]domain.Book)}
}

func (m *memBookStore) Create(_ context.Context, book *domain.Book) error {
	m.books[book.ID] = *book
	return nil
}

func (m *memBookStore) GetByID(_ context.Context, id string) (*domain.Book, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	return &book, nil
}

func (m *memBookStore) List(_ context.Context) ([]domain.Book, error) {
	var out []domain.Book
	for _, b := range m.books {
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookStore) ListByCategory(_ context.Context, category string) ([]domain.Book, error) {
	query := strings.ToLower(category)
	var out []domain.Book
	for _, b := range m.books {
		if strings.Contains(b.CategoryLC, query) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookStore) ListAfterYear(_ context.Context, year int) ([]domain.Book, error) {
	var out []domain.Book
	for _, b := range m.books {
		if b.PublishedYear > year {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookStore) AdjustCopies(_ context.Context, id string, delta int) (*domain.Book, int, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, 0, repository.ErrBookNotFound
	}
	previous := book.AvailableCopies
	if previous+delta < 0 {
		return nil, previous, repository.ErrInsufficientCopies
	}
	book.AvailableCopies += delta
	book.UpdatedAt = time.Now()
	m.books[id] = book
	return &book, previous, nil
}

func (m *memBookStore) UpdateCategory(_ context.Context, id, category string) (*domain.Book, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	book.SetCategory(category)
	m.books[id] = book
	return &book, nil
}

func (m *memBookStore) Update(_ context.Context, book *domain.Book) error {
	if _, ok := m.books[book.ID]; !ok {
		return repository.ErrBookNotFound
	}
	m.books[book.ID] = *book
	return nil
}

func (m *memBookStore) Delete(_ context.Context, id string) (*domain.Book, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, repository.ErrBookNotFound
	}
	if book.AvailableCopies != 0 {
		return &book, repository.ErrBookHasCopies
	}
	delete(m.books, id)
	return &book, nil
}

func newBookTestRouter() (*gin.Engine, *memBookStore) {
	gin.SetMode(gin.TestMode)

	store := newMemBookStore()
	svc := service.NewBookService(store, nil, zap.NewNop())
	h := NewBookHandler(svc, zap.NewNop())

	router := gin.New()
	books := router.Group("/books")
	{
		books.POST("", h.CreateBook)
		books.GET("", h.ListBooks)
		books.GET("/category/:category", h.GetBooksByCategory)
		books.GET("/year/:year", h.GetBooksAfterYear)
		books.GET("/:id", h.GetBook)
		books.PATCH("/:id/copies", h.AdjustCopies)
		books.PATCH("/:id/category", h.UpdateCategory)
		books.PUT("/:id", h.UpdateBook)
		books.DELETE("/:id", h.DeleteBook)
	}

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createBook(t *testing.T, router *gin.Engine, title, author, category string, year, copies int) domain.Book {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title":           title,
		"author":          author,
		"category":        category,
		"publishedYear":   year,
		"availableCopies": copies,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp domain.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Book)
	return *resp.Book
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestCreateBookEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	book := createBook(t, router, "Dune", "Frank Herbert", "Science Fiction", 1965, 4)
	assert.Equal(t, 4, book.AvailableCopies)

	w := doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title": "Incomplete",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t,
		"All fields are required (title, author, category, publishedYear, availableCopies)",
		errorBody(t, w))

	w = doJSON(t, router, http.MethodPost, "/books", gin.H{
		"title":           "T",
		"author":          "A",
		"category":        "C",
		"publishedYear":   2000,
		"availableCopies": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Available copies cannot be negative", errorBody(t, w))
}

func TestListBooksEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	createBook(t, router, "A", "X", "C1", 2000, 1)
	createBook(t, router, "B", "Y", "C2", 2001, 2)

	w := doJSON(t, router, http.MethodGet, "/books", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.BookListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Books, 2)
}

func TestCategorySearchEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	createBook(t, router, "T", "A", "Fiction", 2000, 1)

	w := doJSON(t, router, http.MethodGet, "/books/category/fic", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.CategorySearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "fic", resp.Category)
	assert.Equal(t, 1, resp.Count)

	w = doJSON(t, router, http.MethodGet, "/books/category/zz", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No books found in category: zz", errorBody(t, w))
}

func TestYearSearchEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	createBook(t, router, "T", "A", "C", 2005, 1)

	w := doJSON(t, router, http.MethodGet, "/books/year/2000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.YearSearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2000, resp.SearchYear)
	assert.Equal(t, 1, resp.Count)

	// boundary year itself is excluded
	w = doJSON(t, router, http.MethodGet, "/books/year/2005", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/books/year/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Year must be a valid number", errorBody(t, w))
}

func TestGetBookEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	book := createBook(t, router, "T", "A", "C", 2000, 1)

	w := doJSON(t, router, http.MethodGet, "/books/"+book.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got domain.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, book.Title, got.Title)

	w = doJSON(t, router, http.MethodGet, "/books/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid book ID format", errorBody(t, w))
}

func TestAdjustCopiesEndpoint(t *testing.T) {
	router, store := newBookTestRouter()

	book := createBook(t, router, "T", "A", "C", 2000, 2)

	w := doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/copies", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity is required", errorBody(t, w))

	w = doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/copies", gin.H{"quantity": 1.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Quantity must be an integer", errorBody(t, w))

	w = doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/copies", gin.H{"quantity": -100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot reduce copies below 0. Current: 2, Reduction: 100", errorBody(t, w))
	assert.Equal(t, 2, store.books[book.ID].AvailableCopies)

	w = doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/copies", gin.H{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Copies updated successfully", resp.Message)
	assert.Equal(t, 5, resp.Book.AvailableCopies)
}

func TestUpdateCategoryEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	book := createBook(t, router, "T", "A", "Fiction", 2000, 1)

	w := doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/category", gin.H{"category": "Thriller"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Category updated successfully", resp.Message)
	assert.Equal(t, "Thriller", resp.Book.Category)

	w = doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/category", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "New category is required", errorBody(t, w))
}

func TestUpdateBookEndpoint(t *testing.T) {
	router, _ := newBookTestRouter()

	book := createBook(t, router, "T", "A", "C", 2000, 1)

	w := doJSON(t, router, http.MethodPut, "/books/"+book.ID, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Book updated successfully", resp.Message)
	assert.Equal(t, "Renamed", resp.Book.Title)
	assert.Equal(t, "A", resp.Book.Author)

	w = doJSON(t, router, http.MethodPut, "/books/"+book.ID, gin.H{"availableCopies": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Available copies cannot be negative", errorBody(t, w))
}

// The full lifecycle from the behavioral contract: create with two copies,
// drain to zero, delete, and observe 404 on repeat delete.
func TestBookLifecycle(t *testing.T) {
	router, _ := newBookTestRouter()

	book := createBook(t, router, "X", "Y", "Fiction", 2000, 2)

	w := doJSON(t, router, http.MethodDelete, "/books/"+book.ID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete book. Available copies: 2. Please reduce to 0 first.", errorBody(t, w))

	w = doJSON(t, router, http.MethodPatch, "/books/"+book.ID+"/copies", gin.H{"quantity": -2})
	require.Equal(t, http.StatusOK, w.Code)

	var adjusted domain.BookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &adjusted))
	assert.Equal(t, 0, adjusted.Book.AvailableCopies)

	w = doJSON(t, router, http.MethodDelete, "/books/"+book.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted domain.DeleteBookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, "Book deleted successfully", deleted.Message)
	assert.Equal(t, book.ID, deleted.DeletedBook.ID)

	w = doJSON(t, router, http.MethodDelete, "/books/"+book.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, fmt.Sprintf("Book with ID %s not found", book.ID), errorBody(t, w))
}
