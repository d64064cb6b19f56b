package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/innkeeper/internal/models"
)

// HotelBackend persists the hotel mapping in the hotels and
// hotel_reservations tables.
type HotelBackend struct {
	db *sql.DB
}

// Load reads every hotel with its reservations in booking order.
func (b *HotelBackend) Load(ctx context.Context) (map[string]models.Hotel, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT id, name, location, rooms FROM hotels")
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	hotels := make(map[string]models.Hotel)
	for rows.Next() {
		var id string
		h := models.Hotel{Reservations: []string{}}
		if err := rows.Scan(&id, &h.Name, &h.Location, &h.Rooms); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels[id] = h
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hotels: %w", err)
	}

	resRows, err := b.db.QueryContext(ctx,
		"SELECT hotel_id, customer_id FROM hotel_reservations ORDER BY hotel_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer resRows.Close()

	for resRows.Next() {
		var hotelID, customerID string
		if err := resRows.Scan(&hotelID, &customerID); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		h, ok := hotels[hotelID]
		if !ok {
			continue
		}
		h.Reservations = append(h.Reservations, customerID)
		hotels[hotelID] = h
	}
	if err := resRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}

	return hotels, nil
}

// Save replaces all hotel rows in a single transaction.
func (b *HotelBackend) Save(ctx context.Context, hotels map[string]models.Hotel) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM hotel_reservations"); err != nil {
		return fmt.Errorf("failed to clear reservations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM hotels"); err != nil {
		return fmt.Errorf("failed to clear hotels: %w", err)
	}

	for id, h := range hotels {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO hotels (id, name, location, rooms) VALUES (?, ?, ?, ?)",
			id, h.Name, h.Location, h.Rooms,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hotel %s: %w", id, err)
		}

		for pos, customerID := range h.Reservations {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO hotel_reservations (hotel_id, customer_id, position) VALUES (?, ?, ?)",
				id, customerID, pos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert reservation: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
