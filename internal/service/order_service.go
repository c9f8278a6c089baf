package service

import (
	"context"
	"errors"
	"time"

	"avicena/internal/domain"
	"avicena/internal/repository"
)

var (
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrDrugNotFound     = errors.New("drug not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// OrderService реализует размещение заказов и движение остатков.
// Единственное место, где несколько строк в двух таблицах меняются вместе.
type OrderService struct {
	drugs     repository.DrugRepository
	suppliers repository.SupplierRepository
	orders    repository.OrderRepository
	tx        repository.TxManager
	now       func() time.Time
}

func NewOrderService(drugs repository.DrugRepository, suppliers repository.SupplierRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{drugs: drugs, suppliers: suppliers, orders: orders, tx: tx, now: time.Now}
}

// PlaceOrder создаёт заказ и все его строки одной транзакцией: либо заказ
// со всеми строками виден целиком, либо не записано ничего.
//
// Остатки препаратов при этом НЕ меняются: размещение заказа — учётная
// запись о закупке, приход и расход склада проходят только через
// AdjustInventory. Это намеренная развязка, а не упущение.
func (s *OrderService) PlaceOrder(ctx context.Context, supplierID int64, status domain.OrderStatus, items []domain.OrderItem) (*domain.Order, error) {
	if supplierID <= 0 || len(items) == 0 || !status.Valid() {
		return nil, ErrInvalidInput
	}
	for _, it := range items {
		if it.DrugID <= 0 || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}
	// supplier must exist before the write transaction opens
	if _, err := s.suppliers.GetByID(ctx, supplierID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, err
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// a line referencing a missing drug aborts the whole order
		for _, it := range items {
			if _, err := s.drugs.GetByID(ctx, it.DrugID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrDrugNotFound
				}
				return err
			}
		}
		o := domain.Order{
			OrderDate:  s.now().Format("2006-01-02"),
			SupplierID: supplierID,
			Status:     status,
		}
		for _, it := range items {
			o.Lines = append(o.Lines, domain.OrderLine{DrugID: it.DrugID, Quantity: it.Quantity})
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetOrder возвращает заказ вместе со строками
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

// ListOrders отдаёт заказы с именами поставщиков; заказы удалённых
// поставщиков выпадают из выдачи (inner join)
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.OrderSummary, error) {
	return s.orders.List(ctx)
}

// SearchOrders ищет по десятичному тексту id заказа или подстроке
// имени поставщика; пустой term эквивалентен ListOrders
func (s *OrderService) SearchOrders(ctx context.Context, term string) ([]domain.OrderSummary, error) {
	if term == "" {
		return s.orders.List(ctx)
	}
	return s.orders.Search(ctx, term)
}

// UpdateStatus переводит заказ между Pending и Received
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if id <= 0 || !status.Valid() {
		return ErrInvalidInput
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// DeleteOrder убирает заказ вместе со строками одной транзакцией
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		return s.orders.Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return ErrOrderNotFound
	}
	return err
}

// AdjustInventory применяет дельту одним UPDATE на стороне хранилища и
// возвращает обновлённую запись. Это единственный путь изменения остатка;
// отрицательный итог не блокируется — достаточность проверяет вызывающий.
func (s *OrderService) AdjustInventory(ctx context.Context, drugID int64, delta int64) (*domain.Drug, error) {
	if drugID <= 0 {
		return nil, ErrInvalidInput
	}
	if err := s.drugs.AdjustQuantity(ctx, drugID, delta); err != nil {
		return nil, err
	}
	d, err := s.drugs.GetByID(ctx, drugID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDrugNotFound
		}
		return nil, err
	}
	return d, nil
}
