package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
	"github.com/mmynk/innkeeper/internal/storage/jsonfile"
	"github.com/mmynk/innkeeper/internal/storage/memory"
	"github.com/mmynk/innkeeper/internal/storage/sqlite"
)

type testStores struct {
	hotels       *HotelStore
	customers    *CustomerStore
	reservations *ReservationService

	hotelBackend    *memory.Backend[models.Hotel]
	customerBackend *memory.Backend[models.Customer]
}

// setupStores wires the three components over in-memory backends.
func setupStores(t *testing.T, opts ...Option) *testStores {
	t.Helper()

	hb := memory.New[models.Hotel]()
	cb := memory.New[models.Customer]()

	customers := NewCustomerStore(cb, opts...)
	hotels := NewHotelStore(hb, customers, opts...)

	return &testStores{
		hotels:          hotels,
		customers:       customers,
		reservations:    NewReservationService(hotels, customers),
		hotelBackend:    hb,
		customerBackend: cb,
	}
}

// backendFactories builds stores over each persistent backend so the
// workflow tests also run against real files and databases.
func backendFactories(t *testing.T) map[string]func(t *testing.T) (storage.Backend[models.Hotel], storage.Backend[models.Customer]) {
	t.Helper()
	return map[string]func(t *testing.T) (storage.Backend[models.Hotel], storage.Backend[models.Customer]){
		"memory": func(t *testing.T) (storage.Backend[models.Hotel], storage.Backend[models.Customer]) {
			return memory.New[models.Hotel](), memory.New[models.Customer]()
		},
		"jsonfile": func(t *testing.T) (storage.Backend[models.Hotel], storage.Backend[models.Customer]) {
			dir := t.TempDir()
			return jsonfile.New[models.Hotel](storage.HotelsStore, filepath.Join(dir, "hotels.json")),
				jsonfile.New[models.Customer](storage.CustomersStore, filepath.Join(dir, "customers.json"))
		},
		"sqlite": func(t *testing.T) (storage.Backend[models.Hotel], storage.Backend[models.Customer]) {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
			if err != nil {
				t.Fatalf("failed to create store: %v", err)
			}
			t.Cleanup(func() { store.Close() })
			return store.Hotels(), store.Customers()
		},
	}
}

func mustCreateHotel(t *testing.T, s *testStores, id string, rooms int) {
	t.Helper()
	if err := s.hotels.Create(context.Background(), id, "Grand Hotel", "NY", rooms); err != nil {
		t.Fatalf("Create hotel %s failed: %v", id, err)
	}
}

func mustCreateCustomer(t *testing.T, s *testStores, id string) {
	t.Helper()
	if err := s.customers.Create(context.Background(), id, "John Doe", "1234567890"); err != nil {
		t.Fatalf("Create customer %s failed: %v", id, err)
	}
}

func mustDisplayHotel(t *testing.T, s *testStores, id string) *models.Hotel {
	t.Helper()
	h, err := s.hotels.Display(context.Background(), id)
	if err != nil {
		t.Fatalf("Display hotel %s failed: %v", id, err)
	}
	if h == nil {
		t.Fatalf("hotel %s not found", id)
	}
	return h
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ptr[T any](v T) *T { return &v }
