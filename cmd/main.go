package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/events"
	"github.com/libraops/library-service/internal/handler"
	"github.com/libraops/library-service/internal/repository"
	"github.com/libraops/library-service/internal/service"
	"github.com/libraops/library-service/pkg/config"
	"github.com/libraops/library-service/pkg/middleware"
	pkgtls "github.com/libraops/library-service/pkg/tls"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	dynamoClient, err := repository.NewDynamoDBClient(cfg)
	if err != nil {
		log.Fatal("Failed to create DynamoDB client:", err)
	}

	var publisher events.Publisher
	if cfg.KafkaEnabled {
		producer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer producer.Close()
		publisher = producer
	}

	bookRepo := repository.NewBookRepository(dynamoClient, cfg.BooksTableName)
	customerRepo := repository.NewCustomerRepository(dynamoClient, cfg.CustomersTableName)
	bookService := service.NewBookService(bookRepo, publisher, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	bookHandler := handler.NewBookHandler(bookService, logger)
	customerHandler := handler.NewCustomerHandler(customerService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Library Book Management API"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	books := router.Group("/books")
	{
		books.POST("", bookHandler.CreateBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/category/:category", bookHandler.GetBooksByCategory)
		books.GET("/year/:year", bookHandler.GetBooksAfterYear)
		books.GET("/:id", bookHandler.GetBook)
		books.PATCH("/:id/copies", bookHandler.AdjustCopies)
		books.PATCH("/:id/category", bookHandler.UpdateCategory)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	customers := router.Group("/customers")
	{
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("", customerHandler.ListCustomers)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

	var tlsCfg pkgtls.TLSConfig
	if err := envconfig.Process("", &tlsCfg); err != nil {
		log.Fatal("Failed to load TLS config:", err)
	}

	tlsConfig, err := pkgtls.LoadTLSConfig(&tlsCfg, logger)
	if err != nil {
		log.Fatal("Failed to load TLS configuration:", err)
	}
	defer pkgtls.Cleanup()

	srv := &http.Server{
		Addr:      ":" + cfg.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))

		var serveErr error
		if tlsConfig != nil {
			go pkgtls.WatchCertificates(logger)
			serveErr = srv.ListenAndServeTLS("", "")
		} else {
			serveErr = srv.ListenAndServe()
		}
		if serveErr != nil && serveErr != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(serveErr))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func buildLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = lvl

	return zapCfg.Build()
}
