package service

import (
	"context"
	"testing"
	"time"

	"avicena/internal/domain"
	"avicena/internal/repository"
)

func setupRS(t *testing.T) (*repository.MemoryStore, *ReportService) {
	t.Helper()
	store := repository.NewMemoryStore()
	rs := NewReportService(store)
	rs.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return store, rs
}

func TestReport_LowStock(t *testing.T) {
	ctx := context.Background()
	store, rs := setupRS(t)

	seed := []domain.Drug{
		{Name: "Low", ExpiryDate: "2030-01-01", Quantity: 3},
		{Name: "Boundary", ExpiryDate: "2030-01-01", Quantity: 10},
		{Name: "Plenty", ExpiryDate: "2030-01-01", Quantity: 100},
	}
	for i := range seed {
		if err := store.Create(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	// threshold <= 0 falls back to the default of 10; strictly below
	list, err := rs.LowStock(ctx, 0)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Low" {
		t.Fatalf("default threshold mismatch: %+v", list)
	}

	list, _ = rs.LowStock(ctx, 11)
	if len(list) != 2 {
		t.Fatalf("explicit threshold: want 2, got %d", len(list))
	}
}

func TestReport_ExpiringSoon(t *testing.T) {
	ctx := context.Background()
	store, rs := setupRS(t)

	seed := []domain.Drug{
		{Name: "Expired", ExpiryDate: "2020-01-01", Quantity: 10},
		{Name: "InWindow", ExpiryDate: "2026-09-10", Quantity: 10},
		{Name: "OnCutoff", ExpiryDate: "2026-09-28", Quantity: 10},
		{Name: "Later", ExpiryDate: "2026-12-01", Quantity: 10},
	}
	for i := range seed {
		if err := store.Create(ctx, &seed[i]); err != nil {
			t.Fatal(err)
		}
	}

	// default 30-day window: cutoff is 2026-09-28, strictly before;
	// already expired batches count as expiring
	list, err := rs.ExpiringSoon(ctx, 0)
	if err != nil {
		t.Fatalf("expiring: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("want 2, got %d: %+v", len(list), list)
	}

	list, _ = rs.ExpiringSoon(ctx, 120)
	if len(list) != 4 {
		t.Fatalf("wide window: want 4, got %d", len(list))
	}
}
