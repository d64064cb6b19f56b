package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ReservationService books and cancels reservations from the reservation
// side. It holds no state; all reads and writes go through the two stores.
type ReservationService struct {
	hotels    *HotelStore
	customers *CustomerStore
}

// NewReservationService creates a ReservationService over the given stores.
func NewReservationService(hotels *HotelStore, customers *CustomerStore) *ReservationService {
	return &ReservationService{hotels: hotels, customers: customers}
}

// Create books a room for customerID at hotelID. A missing hotel or customer
// is reported as ErrNotFound, hotel first. Capacity and duplicate checks are
// the same as HotelStore.ReserveRoom, which this delegates to.
func (s *ReservationService) Create(ctx context.Context, customerID, hotelID string) error {
	err := s.hotels.ReserveRoom(ctx, hotelID, customerID)
	if errors.Is(err, ErrUnknownCustomer) {
		return customerNotFound(customerID)
	}
	return err
}

// Cancel releases the reservation. Same semantics as
// HotelStore.CancelReservation.
func (s *ReservationService) Cancel(ctx context.Context, customerID, hotelID string) error {
	return s.hotels.CancelReservation(ctx, hotelID, customerID)
}

// RemoveCustomer deletes the customer and then drops them from every hotel's
// reservation list. It returns the IDs of the hotels whose lists changed.
//
// The two stores are written separately. If pruning fails after the
// customer was deleted, the dangling IDs stay until RemoveCustomer's prune
// step is retried through HotelStore.PruneCustomer.
func (s *ReservationService) RemoveCustomer(ctx context.Context, customerID string) ([]string, error) {
	if err := s.customers.Delete(ctx, customerID); err != nil {
		return nil, err
	}

	affected, err := s.hotels.PruneCustomer(ctx, customerID)
	if err != nil {
		slog.Error("Customer deleted but reservations not pruned",
			"customer_id", customerID,
			"error", err,
		)
		return nil, fmt.Errorf("customer ID %s deleted, pruning reservations failed: %w", customerID, err)
	}
	return affected, nil
}
