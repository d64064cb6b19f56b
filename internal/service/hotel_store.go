package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
)

// CustomerLookup answers whether a customer is registered.
// *CustomerStore implements it.
type CustomerLookup interface {
	Exists(ctx context.Context, customerID string) (bool, error)
}

// HotelStore owns the hotel mapping and is the only writer of reservation
// lists. Every operation loads the full mapping, applies the change and
// saves the full mapping only on success.
type HotelStore struct {
	mu        sync.Mutex
	backend   storage.Backend[models.Hotel]
	customers CustomerLookup
	opts      options
}

// NewHotelStore creates a HotelStore over backend. customers is consulted by
// ReserveRoom to reject unknown customer IDs; without it ReserveRoom fails
// with ErrNoCustomerLookup.
func NewHotelStore(backend storage.Backend[models.Hotel], customers CustomerLookup, opts ...Option) *HotelStore {
	return &HotelStore{
		backend:   backend,
		customers: customers,
		opts:      newOptions(opts),
	}
}

func (s *HotelStore) load(ctx context.Context) (map[string]models.Hotel, error) {
	return load(ctx, s.backend, storage.HotelsStore, &s.opts)
}

func (s *HotelStore) save(ctx context.Context, hotels map[string]models.Hotel) error {
	return save(ctx, s.backend, storage.HotelsStore, hotels)
}

// Create adds a hotel with an empty reservation list.
func (s *HotelStore) Create(ctx context.Context, hotelID, name, location string, rooms int) (err error) {
	defer s.opts.observe(storage.HotelsStore, "create", time.Now(), &err)

	if hotelID == "" {
		return invalidArgument("hotel ID is required")
	}
	if rooms < 0 {
		return invalidArgument("rooms must be >= 0, got %d", rooms)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := hotels[hotelID]; ok {
		return fmt.Errorf("hotel ID %s: %w", hotelID, ErrDuplicateID)
	}

	hotels[hotelID] = models.Hotel{
		Name:         name,
		Location:     location,
		Rooms:        rooms,
		Reservations: []string{},
	}
	if err := s.save(ctx, hotels); err != nil {
		return err
	}

	slog.Info("Hotel created", "hotel_id", hotelID, "rooms", rooms)
	s.opts.metrics.SetReservations(hotelID, 0)
	return nil
}

// Delete removes a hotel together with its reservations.
func (s *HotelStore) Delete(ctx context.Context, hotelID string) (err error) {
	defer s.opts.observe(storage.HotelsStore, "delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return hotelNotFound(hotelID)
	}

	delete(hotels, hotelID)
	if err := s.save(ctx, hotels); err != nil {
		return err
	}

	slog.Info("Hotel deleted", "hotel_id", hotelID, "dropped_reservations", len(h.Reservations))
	s.opts.metrics.ForgetHotel(hotelID)
	return nil
}

// Display returns a copy of the hotel, or nil if it does not exist.
// Absence is not an error.
func (s *HotelStore) Display(ctx context.Context, hotelID string) (h *models.Hotel, err error) {
	defer s.opts.observe(storage.HotelsStore, "display", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	found, ok := hotels[hotelID]
	if !ok {
		return nil, nil // Hotel not found
	}

	found = found.Clone()
	return &found, nil
}

// Modify applies the provided fields of update. Lowering rooms below the
// current reservation count is allowed; existing reservations are kept.
func (s *HotelStore) Modify(ctx context.Context, hotelID string, update models.HotelUpdate) (err error) {
	defer s.opts.observe(storage.HotelsStore, "modify", time.Now(), &err)

	if update.Rooms != nil && *update.Rooms < 0 {
		return invalidArgument("rooms must be >= 0, got %d", *update.Rooms)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return hotelNotFound(hotelID)
	}
	if update.IsEmpty() {
		return nil
	}

	h = h.Clone()
	update.Apply(&h)
	hotels[hotelID] = h
	if err := s.save(ctx, hotels); err != nil {
		return err
	}

	slog.Info("Hotel modified", "hotel_id", hotelID)
	return nil
}

// ReserveRoom books a room for customerID. Checks run in this order, and
// nothing is written unless all pass:
//
//  1. the hotel exists (ErrNotFound)
//  2. the customer exists (ErrUnknownCustomer)
//  3. the customer holds no reservation here yet (ErrDuplicateReservation)
//  4. a room is free (ErrNoCapacity)
func (s *HotelStore) ReserveRoom(ctx context.Context, hotelID, customerID string) (err error) {
	defer s.opts.observe(storage.HotelsStore, "reserve_room", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return hotelNotFound(hotelID)
	}

	if s.customers == nil {
		return fmt.Errorf("reserve customer ID %s: %w", customerID, ErrNoCustomerLookup)
	}
	known, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("customer ID %s: %w", customerID, ErrUnknownCustomer)
	}

	if h.HasReservation(customerID) {
		return fmt.Errorf("customer ID %s at hotel ID %s: %w", customerID, hotelID, ErrDuplicateReservation)
	}
	if h.Available() <= 0 {
		return fmt.Errorf("hotel ID %s has %d rooms: %w", hotelID, h.Rooms, ErrNoCapacity)
	}

	h = h.Clone()
	h.Reservations = append(h.Reservations, customerID)
	hotels[hotelID] = h
	if err := s.save(ctx, hotels); err != nil {
		return err
	}

	slog.Info("Room reserved",
		"hotel_id", hotelID,
		"customer_id", customerID,
		"reservations", len(h.Reservations),
		"rooms", h.Rooms,
	)
	s.opts.metrics.SetReservations(hotelID, len(h.Reservations))
	return nil
}

// CancelReservation releases the room held by customerID.
func (s *HotelStore) CancelReservation(ctx context.Context, hotelID, customerID string) (err error) {
	defer s.opts.observe(storage.HotelsStore, "cancel_reservation", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return err
	}
	h, ok := hotels[hotelID]
	if !ok {
		return hotelNotFound(hotelID)
	}

	idx := slices.Index(h.Reservations, customerID)
	if idx < 0 {
		return fmt.Errorf("customer ID %s at hotel ID %s: %w", customerID, hotelID, ErrReservationNotFound)
	}

	h = h.Clone()
	h.Reservations = slices.Delete(h.Reservations, idx, idx+1)
	hotels[hotelID] = h
	if err := s.save(ctx, hotels); err != nil {
		return err
	}

	slog.Info("Reservation cancelled", "hotel_id", hotelID, "customer_id", customerID)
	s.opts.metrics.SetReservations(hotelID, len(h.Reservations))
	return nil
}

// PruneCustomer removes customerID from every reservation list and returns
// the IDs of the hotels that changed, sorted. Nothing is saved if no hotel
// listed the customer.
func (s *HotelStore) PruneCustomer(ctx context.Context, customerID string) (affected []string, err error) {
	defer s.opts.observe(storage.HotelsStore, "prune_customer", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	hotels, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for id, h := range hotels {
		idx := slices.Index(h.Reservations, customerID)
		if idx < 0 {
			continue
		}
		h = h.Clone()
		h.Reservations = slices.Delete(h.Reservations, idx, idx+1)
		hotels[id] = h
		affected = append(affected, id)
	}
	if len(affected) == 0 {
		return nil, nil
	}

	if err := s.save(ctx, hotels); err != nil {
		return nil, err
	}

	slices.Sort(affected)
	for _, id := range affected {
		s.opts.metrics.SetReservations(id, len(hotels[id].Reservations))
	}
	slog.Info("Customer pruned from reservations", "customer_id", customerID, "hotels", affected)
	return affected, nil
}
