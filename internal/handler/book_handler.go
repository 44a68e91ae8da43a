package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/service"
)

type BookHandler struct {
	bookService *service.BookService
	logger      *zap.Logger
}

func NewBookHandler(bookService *service.BookService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		bookService: bookService,
		logger:      logger,
	}
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req domain.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	book, err := h.bookService.Create(c.Request.Context(), req)
	if err != nil {
		h.respondBookError(c, "", err, "Failed to create book")
		return
	}

	c.JSON(http.StatusCreated, domain.BookResponse{
		Message: "Book created successfully",
		Book:    book,
	})
}

func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.bookService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list books", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if books == nil {
		books = []domain.Book{}
	}

	c.JSON(http.StatusOK, domain.BookListResponse{
		Count: len(books),
		Books: books,
	})
}

func (h *BookHandler) GetBooksByCategory(c *gin.Context) {
	category := c.Param("category")

	books, err := h.bookService.ListByCategory(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, service.ErrNoMatches) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("No books found in category: %s", category),
			})
			return
		}
		h.logger.Error("Failed to search by category",
			zap.String("category", category),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, domain.CategorySearchResponse{
		Category: category,
		Count:    len(books),
		Books:    books,
	})
}

func (h *BookHandler) GetBooksAfterYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Year must be a valid number",
		})
		return
	}

	books, err := h.bookService.ListAfterYear(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, service.ErrNoMatches) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("No books found after year %d", year),
			})
			return
		}
		h.logger.Error("Failed to search by year",
			zap.Int("year", year),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, domain.YearSearchResponse{
		SearchYear: year,
		Count:      len(books),
		Books:      books,
	})
}

func (h *BookHandler) GetBook(c *gin.Context) {
	bookID := c.Param("id")

	book, err := h.bookService.GetByID(c.Request.Context(), bookID)
	if err != nil {
		h.respondBookError(c, bookID, err, "Failed to get book")
		return
	}

	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) AdjustCopies(c *gin.Context) {
	bookID := c.Param("id")

	var req domain.AdjustCopiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity is required",
		})
		return
	}

	if *req.Quantity != math.Trunc(*req.Quantity) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity must be an integer",
		})
		return
	}

	book, err := h.bookService.AdjustCopies(c.Request.Context(), bookID, int(*req.Quantity))
	if err != nil {
		h.respondBookError(c, bookID, err, "Failed to adjust copies")
		return
	}

	c.JSON(http.StatusOK, domain.BookResponse{
		Message: "Copies updated successfully",
		Book:    book,
	})
}

func (h *BookHandler) UpdateCategory(c *gin.Context) {
	bookID := c.Param("id")

	var req domain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	book, err := h.bookService.UpdateCategory(c.Request.Context(), bookID, req.Category)
	if err != nil {
		h.respondBookError(c, bookID, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, domain.BookResponse{
		Message: "Category updated successfully",
		Book:    book,
	})
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID := c.Param("id")

	var req domain.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	book, err := h.bookService.UpdateDetails(c.Request.Context(), bookID, req)
	if err != nil {
		h.respondBookError(c, bookID, err, "Failed to update book")
		return
	}

	c.JSON(http.StatusOK, domain.BookResponse{
		Message: "Book updated successfully",
		Book:    book,
	})
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID := c.Param("id")

	book, err := h.bookService.Delete(c.Request.Context(), bookID)
	if err != nil {
		h.respondBookError(c, bookID, err, "Failed to delete book")
		return
	}

	c.JSON(http.StatusOK, domain.DeleteBookResponse{
		Message:     "Book deleted successfully",
		DeletedBook: book,
	})
}

// respondBookError maps service errors to the response contract shared by
// every book endpoint: validation failures are 400, missing books are 404,
// malformed ids are 400, anything else is a logged 500.
func (h *BookHandler) respondBookError(c *gin.Context, bookID string, err error, logMsg string) {
	if ve, ok := service.IsValidation(err); ok {
		if len(ve.Messages) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Messages[0]})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Messages})
		}
		return
	}

	if errors.Is(err, service.ErrInvalidBookID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Book with ID %s not found", bookID),
		})
		return
	}

	h.logger.Error(logMsg,
		zap.String("book_id", bookID),
		zap.Error(err))

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
