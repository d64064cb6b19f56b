package models

import "slices"

// Hotel represents a hotel and the customers currently holding a room there.
type Hotel struct {
	// Name is the display name of the hotel.
	Name string `json:"name"`

	// Location is a free-form location string (e.g., "NY").
	Location string `json:"location"`

	// Rooms is the room capacity, the upper bound on concurrent reservations.
	Rooms int `json:"rooms"`

	// Reservations lists the IDs of customers holding a room, in booking order.
	// A customer ID appears at most once.
	Reservations []string `json:"reservations"`
}

// HasReservation reports whether customerID holds a room at this hotel.
func (h Hotel) HasReservation(customerID string) bool {
	return slices.Contains(h.Reservations, customerID)
}

// Available returns the number of free rooms. It can be negative if the
// capacity was lowered below the current reservation count.
func (h Hotel) Available() int {
	return h.Rooms - len(h.Reservations)
}

// Clone returns a deep copy so callers cannot alias a store's reservation list.
func (h Hotel) Clone() Hotel {
	h.Reservations = slices.Clone(h.Reservations)
	if h.Reservations == nil {
		h.Reservations = []string{}
	}
	return h
}

// HotelUpdate describes a partial modification of a hotel.
// Nil fields are left unchanged.
type HotelUpdate struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Rooms    *int    `json:"rooms,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u HotelUpdate) IsEmpty() bool {
	return u.Name == nil && u.Location == nil && u.Rooms == nil
}

// Apply copies the provided fields onto h.
func (u HotelUpdate) Apply(h *Hotel) {
	if u.Name != nil {
		h.Name = *u.Name
	}
	if u.Location != nil {
		h.Location = *u.Location
	}
	if u.Rooms != nil {
		h.Rooms = *u.Rooms
	}
}
