package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req domain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to create customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customerService.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if customers == nil {
		customers = []domain.Customer{}
	}

	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := h.customerService.GetByID(c.Request.Context(), customerID)
	if err != nil {
		h.respondCustomerError(c, customerID, err, "Failed to get customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")

	var req domain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), customerID, req)
	if err != nil {
		h.respondCustomerError(c, customerID, err, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")

	if err := h.customerService.Delete(c.Request.Context(), customerID); err != nil {
		h.respondCustomerError(c, customerID, err, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Customer deleted",
	})
}

func (h *CustomerHandler) respondCustomerError(c *gin.Context, customerID string, err error, logMsg string) {
	if errors.Is(err, service.ErrInvalidCustomerID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID format",
		})
		return
	}

	if errors.Is(err, service.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Customer with ID %s not found", customerID),
		})
		return
	}

	h.logger.Error(logMsg,
		zap.String("customer_id", customerID),
		zap.Error(err))

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
