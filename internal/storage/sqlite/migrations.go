package sqlite

import "database/sql"

// schema sets up the database. It runs on startup to ensure tables exist.
// Reservations keep their booking order through the position column.
const schema = `
CREATE TABLE IF NOT EXISTS hotels (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    location TEXT NOT NULL,
    rooms INTEGER NOT NULL CHECK (rooms >= 0)
);

CREATE TABLE IF NOT EXISTS hotel_reservations (
    hotel_id TEXT NOT NULL,
    customer_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (hotel_id, customer_id),
    FOREIGN KEY (hotel_id) REFERENCES hotels(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    contact TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_hotel_reservations_hotel_id ON hotel_reservations(hotel_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
