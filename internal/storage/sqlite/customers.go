package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/innkeeper/internal/models"
)

// CustomerBackend persists the customer mapping in the customers table.
type CustomerBackend struct {
	db *sql.DB
}

// Load reads every customer.
func (b *CustomerBackend) Load(ctx context.Context) (map[string]models.Customer, error) {
	rows, err := b.db.QueryContext(ctx, "SELECT id, name, contact FROM customers")
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make(map[string]models.Customer)
	for rows.Next() {
		var id string
		var c models.Customer
		if err := rows.Scan(&id, &c.Name, &c.Contact); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Save replaces all customer rows in a single transaction.
func (b *CustomerBackend) Save(ctx context.Context, customers map[string]models.Customer) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM customers"); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}

	for id, c := range customers {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO customers (id, name, contact) VALUES (?, ?, ?)",
			id, c.Name, c.Contact,
		)
		if err != nil {
			return fmt.Errorf("failed to insert customer %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
