// Package api serves the stores and the reservation service as Connect RPCs
// with JSON messages. Handlers only translate messages and errors; all
// rules live in the service package.
package api

import (
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/service"
)

// Procedure paths.
const (
	CreateHotelProcedure       = "/innkeeper.v1.HotelService/CreateHotel"
	DisplayHotelProcedure      = "/innkeeper.v1.HotelService/DisplayHotel"
	ModifyHotelProcedure       = "/innkeeper.v1.HotelService/ModifyHotel"
	DeleteHotelProcedure       = "/innkeeper.v1.HotelService/DeleteHotel"
	ReserveRoomProcedure       = "/innkeeper.v1.HotelService/ReserveRoom"
	CancelReservationProcedure = "/innkeeper.v1.HotelService/CancelReservation"

	CreateCustomerProcedure  = "/innkeeper.v1.CustomerService/CreateCustomer"
	DisplayCustomerProcedure = "/innkeeper.v1.CustomerService/DisplayCustomer"
	ModifyCustomerProcedure  = "/innkeeper.v1.CustomerService/ModifyCustomer"
	DeleteCustomerProcedure  = "/innkeeper.v1.CustomerService/DeleteCustomer"

	CreateReservationProcedure = "/innkeeper.v1.ReservationService/CreateReservation"
	CancelBookingProcedure     = "/innkeeper.v1.ReservationService/CancelReservation"
)

// ErrorKindHeader carries service.Kind of a failed call in the error metadata.
const ErrorKindHeader = "Innkeeper-Error-Kind"

// Handler serves the hotel, customer and reservation procedures.
type Handler struct {
	hotels       *service.HotelStore
	customers    *service.CustomerStore
	reservations *service.ReservationService
}

// New creates a Handler.
func New(hotels *service.HotelStore, customers *service.CustomerStore, reservations *service.ReservationService) *Handler {
	return &Handler{hotels: hotels, customers: customers, reservations: reservations}
}

// Register adds every procedure to mux. The JSON codec is always installed;
// opts can add interceptors.
func (h *Handler) Register(mux *http.ServeMux, opts ...connect.HandlerOption) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux.Handle(CreateHotelProcedure, connect.NewUnaryHandler(CreateHotelProcedure, h.CreateHotel, opts...))
	mux.Handle(DisplayHotelProcedure, connect.NewUnaryHandler(DisplayHotelProcedure, h.DisplayHotel, opts...))
	mux.Handle(ModifyHotelProcedure, connect.NewUnaryHandler(ModifyHotelProcedure, h.ModifyHotel, opts...))
	mux.Handle(DeleteHotelProcedure, connect.NewUnaryHandler(DeleteHotelProcedure, h.DeleteHotel, opts...))
	mux.Handle(ReserveRoomProcedure, connect.NewUnaryHandler(ReserveRoomProcedure, h.ReserveRoom, opts...))
	mux.Handle(CancelReservationProcedure, connect.NewUnaryHandler(CancelReservationProcedure, h.CancelReservation, opts...))

	mux.Handle(CreateCustomerProcedure, connect.NewUnaryHandler(CreateCustomerProcedure, h.CreateCustomer, opts...))
	mux.Handle(DisplayCustomerProcedure, connect.NewUnaryHandler(DisplayCustomerProcedure, h.DisplayCustomer, opts...))
	mux.Handle(ModifyCustomerProcedure, connect.NewUnaryHandler(ModifyCustomerProcedure, h.ModifyCustomer, opts...))
	mux.Handle(DeleteCustomerProcedure, connect.NewUnaryHandler(DeleteCustomerProcedure, h.DeleteCustomer, opts...))

	mux.Handle(CreateReservationProcedure, connect.NewUnaryHandler(CreateReservationProcedure, h.CreateReservation, opts...))
	mux.Handle(CancelBookingProcedure, connect.NewUnaryHandler(CancelBookingProcedure, h.CancelBooking, opts...))
}

// Empty is the response of procedures that return nothing.
type Empty struct{}

// HotelResponse is the JSON shape of a hotel.
type HotelResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Rooms        int      `json:"rooms"`
	Reservations []string `json:"reservations"`
	Available    int      `json:"available"`
}

// CustomerResponse is the JSON shape of a customer.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

func newHotelResponse(id string, hotel *models.Hotel) *HotelResponse {
	return &HotelResponse{
		ID:           id,
		Name:         hotel.Name,
		Location:     hotel.Location,
		Rooms:        hotel.Rooms,
		Reservations: hotel.Reservations,
		Available:    max(hotel.Available(), 0),
	}
}

// codeFor maps service errors to Connect codes.
func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrReservationNotFound):
		return connect.CodeNotFound
	case errors.Is(err, service.ErrDuplicateID), errors.Is(err, service.ErrDuplicateReservation):
		return connect.CodeAlreadyExists
	case errors.Is(err, service.ErrNoCapacity):
		return connect.CodeResourceExhausted
	case errors.Is(err, service.ErrUnknownCustomer):
		return connect.CodeFailedPrecondition
	case errors.Is(err, service.ErrInvalidArgument):
		return connect.CodeInvalidArgument
	default:
		return connect.CodeInternal
	}
}

// toConnectError wraps a service error with its code and kind.
func toConnectError(err error) error {
	connectErr := connect.NewError(codeFor(err), err)
	connectErr.Meta().Set(ErrorKindHeader, service.Kind(err))
	return connectErr
}
