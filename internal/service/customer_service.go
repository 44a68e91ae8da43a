package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/libraops/library-service/internal/domain"
	"github.com/libraops/library-service/internal/repository"
)

// CustomerStore is the persistence surface the customer service needs.
type CustomerStore interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

// CustomerService is a thin passthrough to the store. Customers carry no
// field constraints, so there is no validation beyond id parsing.
type CustomerService struct {
	customers CustomerStore
	logger    *zap.Logger
}

func NewCustomerService(customers CustomerStore, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, req domain.CreateCustomerRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Age:        req.Age,
		Membership: req.Membership,
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to save customer",
			zap.String("customer_id", customer.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID),
		zap.String("membership", customer.Membership))

	return customer, nil
}

func (s *CustomerService) ListAll(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// GetByID returns a not-found error for missing customers, matching the
// book service's behavior.
func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidCustomerID
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, req domain.UpdateCustomerRequest) (*domain.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidCustomerID
	}

	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Age != nil {
		customer.Age = *req.Age
	}
	if req.Membership != nil {
		customer.Membership = *req.Membership
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	s.logger.Info("Customer updated", zap.String("customer_id", id))

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidCustomerID
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}

	s.logger.Info("Customer deleted", zap.String("customer_id", id))

	return nil
}
