package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
)

// Ensure CustomerStore can back a HotelStore
var _ CustomerLookup = (*CustomerStore)(nil)

// CustomerStore owns the customer mapping.
type CustomerStore struct {
	mu      sync.Mutex
	backend storage.Backend[models.Customer]
	opts    options
}

// NewCustomerStore creates a CustomerStore over backend.
func NewCustomerStore(backend storage.Backend[models.Customer], opts ...Option) *CustomerStore {
	return &CustomerStore{backend: backend, opts: newOptions(opts)}
}

func (s *CustomerStore) load(ctx context.Context) (map[string]models.Customer, error) {
	return load(ctx, s.backend, storage.CustomersStore, &s.opts)
}

func (s *CustomerStore) save(ctx context.Context, customers map[string]models.Customer) error {
	return save(ctx, s.backend, storage.CustomersStore, customers)
}

// Create registers a customer.
func (s *CustomerStore) Create(ctx context.Context, customerID, name, contact string) (err error) {
	defer s.opts.observe(storage.CustomersStore, "create", time.Now(), &err)

	if customerID == "" {
		return invalidArgument("customer ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := customers[customerID]; ok {
		return fmt.Errorf("customer ID %s: %w", customerID, ErrDuplicateID)
	}

	customers[customerID] = models.Customer{Name: name, Contact: contact}
	if err := s.save(ctx, customers); err != nil {
		return err
	}

	slog.Info("Customer created", "customer_id", customerID)
	return nil
}

// Delete removes a customer. Reservations naming the customer are left in
// place; use ReservationService.RemoveCustomer to prune them as well.
func (s *CustomerStore) Delete(ctx context.Context, customerID string) (err error) {
	defer s.opts.observe(storage.CustomersStore, "delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := customers[customerID]; !ok {
		return customerNotFound(customerID)
	}

	delete(customers, customerID)
	if err := s.save(ctx, customers); err != nil {
		return err
	}

	slog.Info("Customer deleted", "customer_id", customerID)
	return nil
}

// Display returns the customer, or nil if it does not exist.
func (s *CustomerStore) Display(ctx context.Context, customerID string) (c *models.Customer, err error) {
	defer s.opts.observe(storage.CustomersStore, "display", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	found, ok := customers[customerID]
	if !ok {
		return nil, nil // Customer not found
	}
	return &found, nil
}

// Modify applies the provided fields of update.
func (s *CustomerStore) Modify(ctx context.Context, customerID string, update models.CustomerUpdate) (err error) {
	defer s.opts.observe(storage.CustomersStore, "modify", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		return err
	}
	c, ok := customers[customerID]
	if !ok {
		return customerNotFound(customerID)
	}
	if update.IsEmpty() {
		return nil
	}

	update.Apply(&c)
	customers[customerID] = c
	if err := s.save(ctx, customers); err != nil {
		return err
	}

	slog.Info("Customer modified", "customer_id", customerID)
	return nil
}

// Exists reports whether customerID is registered.
func (s *CustomerStore) Exists(ctx context.Context, customerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := customers[customerID]
	return ok, nil
}
