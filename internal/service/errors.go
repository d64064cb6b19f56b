package service

import (
	"errors"
	"fmt"

	"github.com/mmynk/innkeeper/internal/storage"
)

// Expected outcomes of store operations. Match them with errors.Is; the
// returned errors wrap these with the offending IDs.
var (
	ErrDuplicateID          = errors.New("already exists")
	ErrNotFound             = errors.New("does not exist")
	ErrUnknownCustomer      = errors.New("customer is not listed in the system")
	ErrDuplicateReservation = errors.New("customer already has a reservation at this hotel")
	ErrNoCapacity           = errors.New("no available rooms")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrInvalidArgument      = errors.New("invalid argument")
)

// ErrNoCustomerLookup is returned by ReserveRoom on a HotelStore built
// without a CustomerLookup.
var ErrNoCustomerLookup = errors.New("hotel store has no customer lookup")

// Kind returns a short, stable label for err, used for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnknownCustomer):
		return "unknown_customer"
	case errors.Is(err, ErrDuplicateReservation):
		return "duplicate_reservation"
	case errors.Is(err, ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, ErrReservationNotFound):
		return "reservation_not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, storage.ErrCorrupt):
		return "corrupt_store"
	default:
		return "error"
	}
}

func hotelNotFound(id string) error {
	return fmt.Errorf("hotel ID %s: %w", id, ErrNotFound)
}

func customerNotFound(id string) error {
	return fmt.Errorf("customer ID %s: %w", id, ErrNotFound)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
