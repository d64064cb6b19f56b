// Package models defines the core domain records for Innkeeper.
//
// # Records
//
//   - Hotel: a hotel with a fixed room capacity and its reservation list
//   - Customer: a person who can hold reservations
//
// A reservation is not a record of its own. It exists only as a customer ID
// listed in Hotel.Reservations, so "reserved" and "not reserved" are the only
// states a (hotel, customer) pair can be in.
//
// # Identity
//
// Records do not carry their own ID. Stores persist them as a mapping from
// ID to record, and the ID is the mapping key. This keeps the on-disk shape
// identical across backends:
//
//	{"H1": {"name": "Grand Hotel", "location": "NY", "rooms": 2, "reservations": ["C1"]}}
//
// # Updates
//
// HotelUpdate and CustomerUpdate use pointer fields so that "not provided",
// "clear" and "set" are distinguishable. A nil field leaves the stored value
// alone, a pointer to the zero value clears it.
package models
