package api

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/service"
)

type CreateHotelRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Rooms    int    `json:"rooms"`
}

type HotelRequest struct {
	ID string `json:"id"`
}

// ModifyHotelRequest carries the hotel ID and the fields to change.
// Omitted fields are left unchanged.
type ModifyHotelRequest struct {
	ID string `json:"id"`
	models.HotelUpdate
}

type HotelReservationRequest struct {
	HotelID    string `json:"hotel_id"`
	CustomerID string `json:"customer_id"`
}

// CreateHotel adds a hotel with an empty reservation list.
func (h *Handler) CreateHotel(ctx context.Context, req *connect.Request[CreateHotelRequest]) (*connect.Response[HotelResponse], error) {
	msg := req.Msg
	if err := h.hotels.Create(ctx, msg.ID, msg.Name, msg.Location, msg.Rooms); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, msg.ID)
}

// DisplayHotel returns the hotel, or CodeNotFound.
func (h *Handler) DisplayHotel(ctx context.Context, req *connect.Request[HotelRequest]) (*connect.Response[HotelResponse], error) {
	return h.hotelResponse(ctx, req.Msg.ID)
}

// ModifyHotel applies the provided fields and returns the updated hotel.
func (h *Handler) ModifyHotel(ctx context.Context, req *connect.Request[ModifyHotelRequest]) (*connect.Response[HotelResponse], error) {
	if err := h.hotels.Modify(ctx, req.Msg.ID, req.Msg.HotelUpdate); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, req.Msg.ID)
}

// DeleteHotel removes a hotel and its reservations.
func (h *Handler) DeleteHotel(ctx context.Context, req *connect.Request[HotelRequest]) (*connect.Response[Empty], error) {
	if err := h.hotels.Delete(ctx, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&Empty{}), nil
}

// ReserveRoom books a room from the hotel side.
func (h *Handler) ReserveRoom(ctx context.Context, req *connect.Request[HotelReservationRequest]) (*connect.Response[HotelResponse], error) {
	if err := h.hotels.ReserveRoom(ctx, req.Msg.HotelID, req.Msg.CustomerID); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, req.Msg.HotelID)
}

// CancelReservation releases a room from the hotel side.
func (h *Handler) CancelReservation(ctx context.Context, req *connect.Request[HotelReservationRequest]) (*connect.Response[HotelResponse], error) {
	if err := h.hotels.CancelReservation(ctx, req.Msg.HotelID, req.Msg.CustomerID); err != nil {
		return nil, toConnectError(err)
	}
	return h.hotelResponse(ctx, req.Msg.HotelID)
}

func (h *Handler) hotelResponse(ctx context.Context, id string) (*connect.Response[HotelResponse], error) {
	hotel, err := h.hotels.Display(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	if hotel == nil {
		return nil, toConnectError(fmt.Errorf("hotel ID %s: %w", id, service.ErrNotFound))
	}
	return connect.NewResponse(newHotelResponse(id, hotel)), nil
}
