package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"avicena/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGormDrugs_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	d := domain.Drug{Name: "Aspirin", BatchNumber: "B-1", ExpiryDate: "2027-01-01", Manufacturer: "Bayer", Quantity: 50}
	require.NoError(t, drugs.Create(ctx, &d))
	require.NotZero(t, d.ID)

	got, err := drugs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Aspirin", got.Name)
	require.EqualValues(t, 50, got.Quantity)

	// zero values must be written too
	d.Quantity = 0
	d.Manufacturer = ""
	require.NoError(t, drugs.Update(ctx, &d))
	got, err = drugs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, got.Quantity)
	require.Empty(t, got.Manufacturer)

	require.NoError(t, drugs.Delete(ctx, d.ID))
	_, err = drugs.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormDrugs_UpdateDeleteMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	require.NoError(t, drugs.Update(ctx, &domain.Drug{ID: 42, Name: "Ghost", ExpiryDate: "2027-01-01"}))
	require.NoError(t, drugs.Delete(ctx, 42))
	require.NoError(t, drugs.AdjustQuantity(ctx, 42, 5))

	list, err := drugs.List(ctx, NameFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestGormDrugs_SearchByName(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	for _, name := range []string{"Aspirin", "ASPIRIN100", "baby asp", "Ibuprofen"} {
		require.NoError(t, drugs.Create(ctx, &domain.Drug{Name: name, ExpiryDate: "2027-01-01"}))
	}

	list, err := drugs.List(ctx, NameFilter{NameSubstring: "asp"})
	require.NoError(t, err)
	require.Len(t, list, 3)

	list, err = drugs.List(ctx, NameFilter{NameSubstring: "xyz"})
	require.NoError(t, err)
	require.Empty(t, list)

	list, err = drugs.List(ctx, NameFilter{})
	require.NoError(t, err)
	require.Len(t, list, 4)
}

func TestGormDrugs_AdjustQuantity(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	d := domain.Drug{Name: "Aspirin", ExpiryDate: "2027-01-01", Quantity: 50}
	require.NoError(t, drugs.Create(ctx, &d))

	require.NoError(t, drugs.AdjustQuantity(ctx, d.ID, 5))
	got, err := drugs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, 55, got.Quantity)

	// negative totals are not blocked at this level
	require.NoError(t, drugs.AdjustQuantity(ctx, d.ID, -60))
	got, err = drugs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, -5, got.Quantity)
}

func TestGormDrugs_AdjustQuantity_Concurrent(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	d := domain.Drug{Name: "Aspirin", ExpiryDate: "2027-01-01", Quantity: 50}
	require.NoError(t, drugs.Create(ctx, &d))

	// opposing deltas from two writers must cancel out exactly:
	// the arithmetic runs inside a single UPDATE, no read-modify-write
	const rounds = 25
	var wg sync.WaitGroup
	for _, delta := range []int64{5, -5} {
		wg.Add(1)
		go func(delta int64) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				if err := drugs.AdjustQuantity(ctx, d.ID, delta); err != nil {
					t.Errorf("adjust %d: %v", delta, err)
					return
				}
			}
		}(delta)
	}
	wg.Wait()

	got, err := drugs.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.EqualValues(t, 50, got.Quantity)
}

func TestGormDrugs_Reports(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	drugs := NewGormDrugs(db)

	seed := []domain.Drug{
		{Name: "Low", ExpiryDate: "2030-01-01", Quantity: 3},
		{Name: "Boundary", ExpiryDate: "2030-01-01", Quantity: 10},
		{Name: "Expired", ExpiryDate: "2020-01-01", Quantity: 100},
		{Name: "Soon", ExpiryDate: "2026-09-10", Quantity: 100},
	}
	for i := range seed {
		require.NoError(t, drugs.Create(ctx, &seed[i]))
	}

	low, err := drugs.ListLowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	require.Equal(t, "Low", low[0].Name)

	exp, err := drugs.ListExpiringBefore(ctx, "2026-10-01")
	require.NoError(t, err)
	require.Len(t, exp, 2)
}

func TestGormSuppliers_CRUD(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)

	s := domain.Supplier{Name: "Acme Pharma", ContactInfo: "acme@example.com", Address: "Main St 1"}
	require.NoError(t, suppliers.Create(ctx, &s))
	require.NotZero(t, s.ID)

	s.ContactInfo = ""
	require.NoError(t, suppliers.Update(ctx, &s))
	got, err := suppliers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Empty(t, got.ContactInfo)

	list, err := suppliers.List(ctx, NameFilter{NameSubstring: "ACME"})
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, suppliers.Delete(ctx, s.ID))
	_, err = suppliers.GetByID(ctx, s.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormOrders_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)
	orders := NewGormOrders(db)

	sup := domain.Supplier{Name: "Acme"}
	require.NoError(t, suppliers.Create(ctx, &sup))

	o := domain.Order{
		OrderDate:  "2026-08-01",
		SupplierID: sup.ID,
		Status:     domain.OrderStatusPending,
		Lines: []domain.OrderLine{
			{DrugID: 1, Quantity: 10},
			{DrugID: 2, Quantity: 5},
		},
	}
	require.NoError(t, orders.Create(ctx, &o))
	require.NotZero(t, o.ID)

	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	for _, ln := range got.Lines {
		require.Equal(t, o.ID, ln.OrderID)
	}
}

func TestGormOrders_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)
	orders := NewGormOrders(db)

	acme := domain.Supplier{Name: "Acme Pharma"}
	globex := domain.Supplier{Name: "Globex"}
	require.NoError(t, suppliers.Create(ctx, &acme))
	require.NoError(t, suppliers.Create(ctx, &globex))

	require.NoError(t, orders.Create(ctx, &domain.Order{OrderDate: "2026-08-01", SupplierID: acme.ID, Status: domain.OrderStatusPending}))
	require.NoError(t, orders.Create(ctx, &domain.Order{OrderDate: "2026-08-02", SupplierID: globex.ID, Status: domain.OrderStatusReceived}))

	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Acme Pharma", list[0].SupplierName)

	byName, err := orders.Search(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byID, err := orders.Search(ctx, "2")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	require.EqualValues(t, 2, byID[0].OrderID)

	none, err := orders.Search(ctx, "nothing")
	require.NoError(t, err)
	require.Empty(t, none)

	// deleting a supplier drops its orders from the join
	require.NoError(t, suppliers.Delete(ctx, acme.ID))
	list, err = orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Globex", list[0].SupplierName)
}

func TestGormOrders_UpdateStatusAndDeleteCascade(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)
	orders := NewGormOrders(db)

	sup := domain.Supplier{Name: "Acme"}
	require.NoError(t, suppliers.Create(ctx, &sup))

	o := domain.Order{
		OrderDate:  "2026-08-01",
		SupplierID: sup.ID,
		Status:     domain.OrderStatusPending,
		Lines:      []domain.OrderLine{{DrugID: 1, Quantity: 10}},
	}
	require.NoError(t, orders.Create(ctx, &o))

	require.NoError(t, orders.UpdateStatus(ctx, o.ID, domain.OrderStatusReceived))
	got, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusReceived, got.Status)

	require.ErrorIs(t, orders.UpdateStatus(ctx, 99, domain.OrderStatusReceived), ErrNotFound)

	require.NoError(t, orders.Delete(ctx, o.ID))
	require.ErrorIs(t, orders.Delete(ctx, o.ID), ErrNotFound)

	// lines go with the order
	var count int64
	require.NoError(t, db.gdb.Model(&domain.OrderLine{}).Where("order_id = ?", o.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestGormTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)
	orders := NewGormOrders(db)
	tx := NewGormTx(db)

	sup := domain.Supplier{Name: "Acme"}
	require.NoError(t, suppliers.Create(ctx, &sup))

	boom := errors.New("boom")
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		o := domain.Order{
			OrderDate:  "2026-08-01",
			SupplierID: sup.ID,
			Status:     domain.OrderStatusPending,
			Lines:      []domain.OrderLine{{DrugID: 1, Quantity: 10}},
		}
		if err := orders.Create(ctx, &o); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// nothing from the failed transaction is visible
	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
	var count int64
	require.NoError(t, db.gdb.Model(&domain.OrderLine{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGormTx_RollbackOnPanic(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	suppliers := NewGormSuppliers(db)
	orders := NewGormOrders(db)
	tx := NewGormTx(db)

	sup := domain.Supplier{Name: "Acme"}
	require.NoError(t, suppliers.Create(ctx, &sup))

	require.Panics(t, func() {
		_ = tx.WithTransaction(ctx, func(ctx context.Context) error {
			o := domain.Order{OrderDate: "2026-08-01", SupplierID: sup.ID, Status: domain.OrderStatusPending}
			if err := orders.Create(ctx, &o); err != nil {
				return err
			}
			panic("boom")
		})
	})

	// rolled back, and the handle is still usable for new transactions
	list, err := orders.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = tx.WithTransaction(ctx, func(ctx context.Context) error {
		return orders.Create(ctx, &domain.Order{OrderDate: "2026-08-02", SupplierID: sup.ID, Status: domain.OrderStatusPending})
	})
	require.NoError(t, err)
	list, err = orders.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGormUsers_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewGormUsers(db)

	u := domain.User{Username: "bob", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, &u))
	require.ErrorIs(t, users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h2"}), ErrDuplicate)

	got, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGormUsers_UniqueIndexViolationMapped(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	// insert behind the repository's back: only the unique index stands
	// between two rows with the same username
	require.NoError(t, db.gdb.Create(&domain.User{Username: "bob", PasswordHash: "h"}).Error)
	err := db.gdb.Create(&domain.User{Username: "bob", PasswordHash: "h2"}).Error
	require.Error(t, err)
	require.True(t, isUniqueViolation(err), "driver error not recognized: %v", err)
	require.False(t, isUniqueViolation(nil))

	// and through the repository the raw constraint error never escapes
	users := NewGormUsers(db)
	require.ErrorIs(t, users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h3"}), ErrDuplicate)
}

func TestGormUsers_ConcurrentSameUsername(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewGormUsers(db)

	// both racers may pass the precheck; the loser must still see
	// ErrDuplicate, not a raw constraint error
	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicate):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, created)

	var count int64
	require.NoError(t, db.gdb.Model(&domain.User{}).Where("username = ?", "bob").Count(&count).Error)
	require.EqualValues(t, 1, count)
}
