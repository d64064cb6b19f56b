package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
)

func TestCustomerStore_CreateDisplay(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	if err := s.customers.Create(ctx, "C1", "John Doe", "1234567890"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c, err := s.customers.Display(ctx, "C1")
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if c == nil {
		t.Fatal("expected customer, got nil")
	}
	if c.Name != "John Doe" {
		t.Errorf("name: expected 'John Doe', got '%s'", c.Name)
	}
	if c.Contact != "1234567890" {
		t.Errorf("contact: expected '1234567890', got '%s'", c.Contact)
	}
}

func TestCustomerStore_CreateErrors(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	mustCreateCustomer(t, s, "C1")

	if err := s.customers.Create(ctx, "C1", "Jane Doe", "0987654321"); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
	if err := s.customers.Create(ctx, "", "Jane Doe", "0987654321"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	c, _ := s.customers.Display(ctx, "C1")
	if c.Name != "John Doe" {
		t.Errorf("first record changed: %+v", c)
	}
}

func TestCustomerStore_Delete(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	mustCreateCustomer(t, s, "C1")
	if err := s.customers.Delete(ctx, "C1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	c, err := s.customers.Display(ctx, "C1")
	if err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if c != nil {
		t.Errorf("expected customer to be gone, got %+v", c)
	}

	if err := s.customers.Delete(ctx, "C1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCustomerStore_DeleteDoesNotCascade(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	mustCreateHotel(t, s, "H1", 2)
	mustCreateCustomer(t, s, "C1")
	if err := s.hotels.ReserveRoom(ctx, "H1", "C1"); err != nil {
		t.Fatalf("ReserveRoom failed: %v", err)
	}

	if err := s.customers.Delete(ctx, "C1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if got := mustDisplayHotel(t, s, "H1").Reservations; !equalIDs(got, []string{"C1"}) {
		t.Errorf("expected dangling reservation to remain, got %v", got)
	}
}

func TestCustomerStore_Modify(t *testing.T) {
	tests := []struct {
		name   string
		update models.CustomerUpdate
		want   models.Customer
	}{
		{"contact only", models.CustomerUpdate{Contact: ptr("1112223333")}, models.Customer{Name: "John Doe", Contact: "1112223333"}},
		{"name only", models.CustomerUpdate{Name: ptr("Johnny")}, models.Customer{Name: "Johnny", Contact: "1234567890"}},
		{"clear contact", models.CustomerUpdate{Contact: ptr("")}, models.Customer{Name: "John Doe", Contact: ""}},
		{"nothing", models.CustomerUpdate{}, models.Customer{Name: "John Doe", Contact: "1234567890"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupStores(t)
			ctx := context.Background()
			mustCreateCustomer(t, s, "C1")

			if err := s.customers.Modify(ctx, "C1", tt.update); err != nil {
				t.Fatalf("Modify failed: %v", err)
			}

			c, err := s.customers.Display(ctx, "C1")
			if err != nil {
				t.Fatalf("Display failed: %v", err)
			}
			if *c != tt.want {
				t.Errorf("got %+v, want %+v", *c, tt.want)
			}
		})
	}
}

func TestCustomerStore_ModifyNotFound(t *testing.T) {
	s := setupStores(t)

	err := s.customers.Modify(context.Background(), "C9", models.CustomerUpdate{Name: ptr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCustomerStore_Exists(t *testing.T) {
	s := setupStores(t)
	ctx := context.Background()

	mustCreateCustomer(t, s, "C1")

	for id, want := range map[string]bool{"C1": true, "C2": false} {
		got, err := s.customers.Exists(ctx, id)
		if err != nil {
			t.Fatalf("Exists(%s) failed: %v", id, err)
		}
		if got != want {
			t.Errorf("Exists(%s) = %v, want %v", id, got, want)
		}
	}
}

func TestCustomerStore_CorruptStoreMakesCustomersUnknown(t *testing.T) {
	var warned bool
	s := setupStores(t, WithCorruptionHandler(func(err *storage.CorruptError) {
		warned = err.Store == storage.CustomersStore
	}))
	ctx := context.Background()

	mustCreateHotel(t, s, "H1", 1)
	mustCreateCustomer(t, s, "C1")
	s.customerBackend.Corrupt(storage.CustomersStore, errors.New("invalid character"))

	if err := s.hotels.ReserveRoom(ctx, "H1", "C1"); !errors.Is(err, ErrUnknownCustomer) {
		t.Errorf("expected ErrUnknownCustomer after corruption, got %v", err)
	}
	if !warned {
		t.Error("expected corruption handler to be called for the customer store")
	}
}
