package service

import (
	"context"
	"time"

	"avicena/internal/domain"
	"avicena/internal/repository"
)

// Default thresholds for inventory reports.
const (
	DefaultLowStockThreshold = 10
	DefaultExpiryWindowDays  = 30
)

// ReportService производные отчёты по складу; считаются заново при каждом вызове
type ReportService struct {
	drugs repository.DrugRepository
	now   func() time.Time
}

func NewReportService(drugs repository.DrugRepository) *ReportService {
	return &ReportService{drugs: drugs, now: time.Now}
}

// LowStock препараты с остатком строго ниже порога
func (s *ReportService) LowStock(ctx context.Context, threshold int64) ([]domain.Drug, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return s.drugs.ListLowStock(ctx, threshold)
}

// ExpiringSoon препараты со сроком годности раньше now+window.
// Уже просроченные партии тоже попадают в выдачу: «скоро истекает»
// означает «порог срока ещё не пройден», включая пройденный.
func (s *ReportService) ExpiringSoon(ctx context.Context, windowDays int) ([]domain.Drug, error) {
	if windowDays <= 0 {
		windowDays = DefaultExpiryWindowDays
	}
	cutoff := s.now().AddDate(0, 0, windowDays).Format("2006-01-02")
	return s.drugs.ListExpiringBefore(ctx, cutoff)
}
