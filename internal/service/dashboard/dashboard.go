// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"decora-admin/internal/domain/blackout"
	"decora-admin/internal/domain/booking"
	"decora-admin/internal/domain/customer"
	"decora-admin/internal/domain/dashboard"
	"decora-admin/internal/domain/pipeline"
	"decora-admin/internal/repository/postgres"

	"go.uber.org/zap"
)

// Service computes the landing-page counters. Every call recomputes
// from a fresh snapshot; there is no incremental state to drift.
type Service struct {
	visitRepo    *postgres.VisitRepository
	enquiryRepo  *postgres.EnquiryRepository
	blackoutRepo *postgres.BlackoutRepository
	logger       *zap.Logger
}

func NewService(
	visitRepo *postgres.VisitRepository,
	enquiryRepo *postgres.EnquiryRepository,
	blackoutRepo *postgres.BlackoutRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		visitRepo:    visitRepo,
		enquiryRepo:  enquiryRepo,
		blackoutRepo: blackoutRepo,
		logger:       logger,
	}
}

// Stats loads everything and folds it into the counter set.
func (s *Service) Stats(ctx context.Context) (*dashboard.Stats, error) {
	visits, err := s.visitRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}
	enquiries, err := s.enquiryRepo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiries: %w", err)
	}
	blackouts, err := s.blackoutRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackouts: %w", err)
	}

	stats := Compute(visits, enquiries, blackouts, time.Now())
	return &stats, nil
}

// Compute derives every counter from one snapshot. Customer-level
// counters (pending quotes, in progress, per-stage) go through the
// identity merge first so one person with three records counts once;
// the upcoming-visitor counter likewise counts distinct identities,
// not appointments.
func Compute(visits []booking.Visit, enquiries []booking.Enquiry, blackouts []blackout.Window, now time.Time) dashboard.Stats {
	records := make([]customer.Record, 0, len(visits)+len(enquiries))
	for _, v := range visits {
		records = append(records, v.AsRecord())
	}
	for _, e := range enquiries {
		records = append(records, e.AsRecord())
	}
	aggregates, unresolved := customer.Merge(records)

	stats := dashboard.Stats{
		UnresolvedRecords: len(unresolved),
		ByStage:           make(map[string]int, len(pipeline.All())),
	}
	for _, st := range pipeline.All() {
		stats.ByStage[string(st)] = 0
	}

	upcoming := make(map[customer.Key]bool)
	for _, v := range visits {
		if v.StartTime.Before(now) {
			continue
		}
		if key := v.IdentityKey(); key != "" {
			upcoming[key] = true
		}
	}
	stats.UpcomingVisitors = len(upcoming)

	for _, agg := range aggregates {
		stats.ByStage[string(agg.LastStatus)]++
		switch agg.LastStatus {
		case pipeline.StatusNew, pipeline.StatusQuoted:
			stats.PendingQuotes++
		case pipeline.StatusInProgress, pipeline.StatusCompleted:
			stats.InProgress++
		}
	}

	for _, w := range blackouts {
		if !w.EndTime.Before(now) {
			stats.ActiveBlackouts++
		}
	}

	return stats
}
