package api

import (
	"context"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/service"
)

type CreateCustomerRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type CustomerRequest struct {
	ID string `json:"id"`
}

// ModifyCustomerRequest carries the customer ID and the fields to change.
type ModifyCustomerRequest struct {
	ID string `json:"id"`
	models.CustomerUpdate
}

// DeleteCustomerRequest deletes a customer. With Cascade the customer is
// also dropped from every hotel's reservation list.
type DeleteCustomerRequest struct {
	ID      string `json:"id"`
	Cascade bool   `json:"cascade,omitempty"`
}

type DeleteCustomerResponse struct {
	PrunedHotels []string `json:"pruned_hotels"`
}

// CreateCustomer registers a customer.
func (h *Handler) CreateCustomer(ctx context.Context, req *connect.Request[CreateCustomerRequest]) (*connect.Response[CustomerResponse], error) {
	msg := req.Msg
	if err := h.customers.Create(ctx, msg.ID, msg.Name, msg.Contact); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CustomerResponse{ID: msg.ID, Name: msg.Name, Contact: msg.Contact}), nil
}

// DisplayCustomer returns the customer, or CodeNotFound.
func (h *Handler) DisplayCustomer(ctx context.Context, req *connect.Request[CustomerRequest]) (*connect.Response[CustomerResponse], error) {
	return h.customerResponse(ctx, req.Msg.ID)
}

// ModifyCustomer applies the provided fields and returns the updated customer.
func (h *Handler) ModifyCustomer(ctx context.Context, req *connect.Request[ModifyCustomerRequest]) (*connect.Response[CustomerResponse], error) {
	if err := h.customers.Modify(ctx, req.Msg.ID, req.Msg.CustomerUpdate); err != nil {
		return nil, toConnectError(err)
	}
	return h.customerResponse(ctx, req.Msg.ID)
}

// DeleteCustomer leaves reservations untouched unless Cascade is set.
func (h *Handler) DeleteCustomer(ctx context.Context, req *connect.Request[DeleteCustomerRequest]) (*connect.Response[DeleteCustomerResponse], error) {
	if !req.Msg.Cascade {
		if err := h.customers.Delete(ctx, req.Msg.ID); err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&DeleteCustomerResponse{PrunedHotels: []string{}}), nil
	}

	pruned, err := h.reservations.RemoveCustomer(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if pruned == nil {
		pruned = []string{}
	}
	return connect.NewResponse(&DeleteCustomerResponse{PrunedHotels: pruned}), nil
}

func (h *Handler) customerResponse(ctx context.Context, id string) (*connect.Response[CustomerResponse], error) {
	customer, err := h.customers.Display(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	if customer == nil {
		return nil, toConnectError(fmt.Errorf("customer ID %s: %w", id, service.ErrNotFound))
	}
	return connect.NewResponse(&CustomerResponse{ID: id, Name: customer.Name, Contact: customer.Contact}), nil
}
