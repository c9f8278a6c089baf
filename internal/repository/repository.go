package repository

import (
	"context"
	"errors"
	"strings"

	"avicena/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrDuplicate возвращается при нарушении уникальности
var ErrDuplicate = errors.New("duplicate")

// NameFilter параметры фильтрации списков по подстроке имени (без учёта регистра)
type NameFilter struct {
	NameSubstring string
}

// DrugRepository интерфейс репозитория препаратов
type DrugRepository interface {
	Create(ctx context.Context, d *domain.Drug) error
	GetByID(ctx context.Context, id int64) (*domain.Drug, error)
	// Update и Delete молча завершаются успехом, если записи с таким id нет
	Update(ctx context.Context, d *domain.Drug) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f NameFilter) ([]domain.Drug, error)
	// AdjustQuantity выполняется одним UPDATE на стороне хранилища,
	// без чтения-записи, чтобы не терять параллельные корректировки
	AdjustQuantity(ctx context.Context, id int64, delta int64) error
	ListLowStock(ctx context.Context, threshold int64) ([]domain.Drug, error)
	ListExpiringBefore(ctx context.Context, cutoff string) ([]domain.Drug, error)
}

// SupplierRepository интерфейс репозитория поставщиков
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) error
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f NameFilter) ([]domain.Supplier, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	// Create сохраняет заказ и все его строки; вызывается внутри транзакции
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	// Delete удаляет заказ вместе со строками (композиция)
	Delete(ctx context.Context, id int64) error
	// List и Search отдают заказы вместе с именем поставщика (inner join):
	// заказы удалённых поставщиков в выдачу не попадают
	List(ctx context.Context) ([]domain.OrderSummary, error)
	Search(ctx context.Context, term string) ([]domain.OrderSummary, error)
}

// UserRepository интерфейс репозитория учётных записей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TxManager абстракция транзакции
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
