package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"avicena/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID.
// Используется в тестах вместо файла SQLite.
type MemoryStore struct {
	mu             sync.RWMutex
	nextDrugID     int64
	nextSupplierID int64
	nextOrderID    int64
	nextLineID     int64
	nextUserID     int64
	drugsByID      map[int64]domain.Drug
	suppliersByID  map[int64]domain.Supplier
	ordersByID     map[int64]domain.Order
	usersByName    map[string]domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextDrugID:     1,
		nextSupplierID: 1,
		nextOrderID:    1,
		nextLineID:     1,
		nextUserID:     1,
		drugsByID:      make(map[int64]domain.Drug),
		suppliersByID:  make(map[int64]domain.Supplier),
		ordersByID:     make(map[int64]domain.Order),
		usersByName:    make(map[string]domain.User),
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ DrugRepository = (*MemoryStore)(nil)

// Остальные репозитории реализованы типами-обёртками ниже

// DrugRepository implementation
func (m *MemoryStore) Create(ctx context.Context, d *domain.Drug) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	d.ID = m.nextDrugID
	m.nextDrugID++
	m.drugsByID[d.ID] = *d
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	d, ok := m.drugsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := d
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, d *domain.Drug) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.drugsByID[d.ID]; !ok {
		return nil // silent no-op, matches UPDATE with no matching row
	}
	m.drugsByID[d.ID] = *d
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	delete(m.drugsByID, id)
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f NameFilter) ([]domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Drug, 0)
	for _, d := range m.drugsByID {
		if !containsIgnoreCase(d.Name, f.NameSubstring) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) AdjustQuantity(ctx context.Context, id int64, delta int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	d, ok := m.drugsByID[id]
	if !ok {
		return nil // no matching row, nothing to update
	}
	d.Quantity += delta
	m.drugsByID[id] = d
	return nil
}

func (m *MemoryStore) ListLowStock(ctx context.Context, threshold int64) ([]domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Drug, 0)
	for _, d := range m.drugsByID {
		if d.Quantity < threshold {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) ListExpiringBefore(ctx context.Context, cutoff string) ([]domain.Drug, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Drug, 0)
	for _, d := range m.drugsByID {
		// ISO dates compare lexicographically
		if d.ExpiryDate < cutoff {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SupplierRepository implementation on wrapper type
type MemorySuppliers struct{ store *MemoryStore }

func NewMemorySuppliers(store *MemoryStore) *MemorySuppliers { return &MemorySuppliers{store: store} }

var _ SupplierRepository = (*MemorySuppliers)(nil)

func (ms *MemorySuppliers) Create(ctx context.Context, s *domain.Supplier) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	s.ID = ms.store.nextSupplierID
	ms.store.nextSupplierID++
	ms.store.suppliersByID[s.ID] = *s
	return nil
}

func (ms *MemorySuppliers) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	s, ok := ms.store.suppliersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (ms *MemorySuppliers) Update(ctx context.Context, s *domain.Supplier) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	if _, ok := ms.store.suppliersByID[s.ID]; !ok {
		return nil
	}
	ms.store.suppliersByID[s.ID] = *s
	return nil
}

func (ms *MemorySuppliers) Delete(ctx context.Context, id int64) error {
	ms.store.wlock(ctx)
	defer ms.store.wunlock(ctx)
	delete(ms.store.suppliersByID, id)
	return nil
}

func (ms *MemorySuppliers) List(ctx context.Context, f NameFilter) ([]domain.Supplier, error) {
	ms.store.rlock(ctx)
	defer ms.store.runlock(ctx)
	out := make([]domain.Supplier, 0)
	for _, s := range ms.store.suppliersByID {
		if !containsIgnoreCase(s.Name, f.NameSubstring) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	lines := make([]domain.OrderLine, len(o.Lines))
	for i, ln := range o.Lines {
		ln.ID = mo.store.nextLineID
		mo.store.nextLineID++
		ln.OrderID = o.ID
		lines[i] = ln
	}
	o.Lines = lines
	cp := *o
	cp.Lines = append([]domain.OrderLine(nil), lines...)
	mo.store.ordersByID[o.ID] = cp
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (mo *MemoryOrders) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return ErrNotFound
	}
	o.Status = status
	mo.store.ordersByID[id] = o
	return nil
}

func (mo *MemoryOrders) Delete(ctx context.Context, id int64) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	if _, ok := mo.store.ordersByID[id]; !ok {
		return ErrNotFound
	}
	delete(mo.store.ordersByID, id)
	return nil
}

func (mo *MemoryOrders) List(ctx context.Context) ([]domain.OrderSummary, error) {
	return mo.Search(ctx, "")
}

func (mo *MemoryOrders) Search(ctx context.Context, term string) ([]domain.OrderSummary, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.OrderSummary, 0)
	for _, o := range mo.store.ordersByID {
		sup, ok := mo.store.suppliersByID[o.SupplierID]
		if !ok {
			continue // join semantics: dangling supplier drops the row
		}
		idText := strconv.FormatInt(o.ID, 10)
		if !containsIgnoreCase(idText, term) && !containsIgnoreCase(sup.Name, term) {
			continue
		}
		out = append(out, domain.OrderSummary{
			OrderID:      o.ID,
			OrderDate:    o.OrderDate,
			SupplierName: sup.Name,
			Status:       o.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderID < out[j].OrderID })
	return out, nil
}

// UserRepository implementation on wrapper type
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (mu *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	mu.store.wlock(ctx)
	defer mu.store.wunlock(ctx)
	if _, ok := mu.store.usersByName[u.Username]; ok {
		return ErrDuplicate
	}
	u.ID = mu.store.nextUserID
	mu.store.nextUserID++
	mu.store.usersByName[u.Username] = *u
	return nil
}

func (mu *MemoryUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	mu.store.rlock(ctx)
	defer mu.store.runlock(ctx)
	u, ok := mu.store.usersByName[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := u
	return &cp, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
