package api

import (
	"context"

	"connectrpc.com/connect"
)

type ReservationRequest struct {
	CustomerID string `json:"customer_id"`
	HotelID    string `json:"hotel_id"`
}

// CreateReservation books a room from the reservation side.
func (h *Handler) CreateReservation(ctx context.Context, req *connect.Request[ReservationRequest]) (*connect.Response[HotelResponse], error) {
	if err := h.reservations.Create(ctx, req.Msg.CustomerID, req.Msg.HotelID); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, req.Msg.HotelID)
}

// CancelBooking releases a room from the reservation side.
func (h *Handler) CancelBooking(ctx context.Context, req *connect.Request[ReservationRequest]) (*connect.Response[HotelResponse], error) {
	if err := h.reservations.Cancel(ctx, req.Msg.CustomerID, req.Msg.HotelID); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, req.Msg.HotelID)
}
