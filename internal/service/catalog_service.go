package service

import (
	"context"
	"errors"
	"time"

	"avicena/internal/domain"
	"avicena/internal/repository"
)

// ErrInvalidInput некорректные входные данные
var ErrInvalidInput = errors.New("invalid input")

// CatalogService операции справочника препаратов и поставщиков.
// Каждая операция — один запрос к хранилищу, транзакции не нужны.
type CatalogService struct {
	drugs     repository.DrugRepository
	suppliers repository.SupplierRepository
}

func NewCatalogService(drugs repository.DrugRepository, suppliers repository.SupplierRepository) *CatalogService {
	return &CatalogService{drugs: drugs, suppliers: suppliers}
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// AddDrug сохраняет партию как есть: количество не нормализуется,
// границы значений — зона ответственности вызывающего
func (s *CatalogService) AddDrug(ctx context.Context, d domain.Drug) (*domain.Drug, error) {
	if d.Name == "" || !validDate(d.ExpiryDate) {
		return nil, ErrInvalidInput
	}
	cp := d
	cp.ID = 0
	if err := s.drugs.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) GetDrug(ctx context.Context, id int64) (*domain.Drug, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.drugs.GetByID(ctx, id)
}

// ListDrugs с пустым term возвращает весь справочник, иначе ищет
// по подстроке имени без учёта регистра
func (s *CatalogService) ListDrugs(ctx context.Context, term string) ([]domain.Drug, error) {
	return s.drugs.List(ctx, repository.NameFilter{NameSubstring: term})
}

// UpdateDrug полная замена изменяемых полей; отсутствие id не считается ошибкой
func (s *CatalogService) UpdateDrug(ctx context.Context, d domain.Drug) error {
	if d.ID <= 0 || d.Name == "" || !validDate(d.ExpiryDate) {
		return ErrInvalidInput
	}
	return s.drugs.Update(ctx, &d)
}

// DeleteDrug не проверяет ссылающиеся строки заказов
func (s *CatalogService) DeleteDrug(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.drugs.Delete(ctx, id)
}

func (s *CatalogService) AddSupplier(ctx context.Context, sup domain.Supplier) (*domain.Supplier, error) {
	if sup.Name == "" {
		return nil, ErrInvalidInput
	}
	cp := sup
	cp.ID = 0
	if err := s.suppliers.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.suppliers.GetByID(ctx, id)
}

func (s *CatalogService) ListSuppliers(ctx context.Context, term string) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx, repository.NameFilter{NameSubstring: term})
}

func (s *CatalogService) UpdateSupplier(ctx context.Context, sup domain.Supplier) error {
	if sup.ID <= 0 || sup.Name == "" {
		return ErrInvalidInput
	}
	return s.suppliers.Update(ctx, &sup)
}

func (s *CatalogService) DeleteSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.suppliers.Delete(ctx, id)
}
