// Package statsservice manages business logic layer of system statistics.
package statsservice

import (
	"context"
	"time"

	"github.com/go-teller/teller-bank/internal/domain"
)

// Repo provides data access layer interface needed by stats service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statsservice
type Repo interface {
	Overview(ctx context.Context) (domain.StatsOverview, error)
	Report(ctx context.Context, since time.Time) (domain.PeriodReport, error)
}

// Service facilitates stats service layer logic.
type Service struct {
	repo Repo
}

// New returns stats service struct to manage stats bussines logic.
func New(sr Repo) *Service {
	return &Service{repo: sr}
}

// Overview returns system-wide totals for the manager dashboard.
func (s *Service) Overview(ctx context.Context) (domain.StatsOverview, error) {
	return s.repo.Overview(ctx)
}

// Reports returns settled transaction sums for today, the last 7 days and
// the last 30 days.
func (s *Service) Reports(ctx context.Context) ([]domain.PeriodReport, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	periods := []struct {
		name  string
		since time.Time
	}{
		{"today", midnight},
		{"7d", now.AddDate(0, 0, -7)},
		{"30d", now.AddDate(0, 0, -30)},
	}

	reports := make([]domain.PeriodReport, 0, len(periods))

	for _, period := range periods {
		report, err := s.repo.Report(ctx, period.since)
		if err != nil {
			return nil, err
		}

		report.Period = period.name
		reports = append(reports, report)
	}

	return reports, nil
}
