package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/repository"
	"github.com/libraops/library-service/internal/service"
	"github.com/libraops/library-service/pkg/config"
)

// seedBooks is the starter catalog loaded into an empty books table.
var seedBooks = []domain.CreateBookRequest{
	newSeedBook("The Great Gatsby", "F. Scott Fitzgerald", "Fiction", 1925, 5),
	newSeedBook("To Kill a Mockingbird", "Harper Lee", "Fiction", 1960, 3),
	newSeedBook("1984", "George Orwell", "Dystopian", 1949, 4),
	newSeedBook("Pride and Prejudice", "Jane Austen", "Romance", 1813, 6),
	newSeedBook("The Catcher in the Rye", "J.D. Salinger", "Fiction", 1951, 2),
	newSeedBook("Sapiens", "Yuval Noah Harari", "Non-Fiction", 2011, 7),
	newSeedBook("Educated", "Tara Westover", "Biography", 2018, 4),
	newSeedBook("Atomic Habits", "James Clear", "Self-Help", 2018, 8),
	newSeedBook("The Silent Patient", "Alex Michaelides", "Thriller", 2019, 5),
}

func newSeedBook(title, author, category string, year, copies int) domain.CreateBookRequest {
	return domain.CreateBookRequest{
		Title:           title,
		Author:          author,
		Category:        category,
		PublishedYear:   &year,
		AvailableCopies: &copies,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	ctx := context.Background()
	bookRepo := repository.NewBookRepository(dynamoClient, cfg.BooksTableName)

	if err := bookRepo.DeleteAll(ctx); err != nil {
		logger.Fatal("Failed to clear books table", zap.Error(err))
	}
	logger.Info("Cleared existing books")

	bookService := service.NewBookService(bookRepo, nil, logger)
	for _, req := range seedBooks {
		book, err := bookService.Create(ctx, req)
		if err != nil {
			logger.Fatal("Failed to seed book",
				zap.String("title", req.Title),
				zap.Error(err))
		}
		logger.Info("Seeded book",
			zap.String("book_id", book.ID),
			zap.String("title", book.Title))
	}

	logger.Info("Seeding complete", zap.Int("count", len(seedBooks)))
}
