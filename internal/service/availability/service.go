// internal/service/availability/service.go
package availability

import (
	"context"
	"fmt"
	"time"

	"decora-admin/internal/domain/blackout"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/timeutil"
	"decora-admin/internal/realtime"
	"decora-admin/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service owns the calendar views and the blackout lifecycle.
type Service struct {
	visitRepo    *postgres.VisitRepository
	blackoutRepo *postgres.BlackoutRepository
	bus          realtime.Bus
	logger       *zap.Logger
}

func NewService(
	visitRepo *postgres.VisitRepository,
	blackoutRepo *postgres.BlackoutRepository,
	bus realtime.Bus,
	logger *zap.Logger,
) *Service {
	return &Service{
		visitRepo:    visitRepo,
		blackoutRepo: blackoutRepo,
		bus:          bus,
		logger:       logger,
	}
}

// MonthView is the calendar payload: the Monday-first grid plus the
// per-day indicator counts.
type MonthView struct {
	Grid  [][]*time.Time      `json:"grid"`
	Stats map[string]DayCount `json:"stats"`
}

// Month loads the month's visits and blackouts and computes the
// calendar indicators.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (*MonthView, error) {
	from, to := timeutil.MonthBounds(year, month)

	visits, err := s.visitRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load month visits: %w", err)
	}
	blackouts, err := s.blackoutRepo.ListOverlapping(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load month blackouts: %w", err)
	}

	return &MonthView{
		Grid:  timeutil.MonthGrid(year, month),
		Stats: MonthStats(visits, blackouts, year, month),
	}, nil
}

// Day loads the detail view for one local date.
func (s *Service) Day(ctx context.Context, date time.Time) (*DayView, error) {
	dayStart, dayEnd := timeutil.DayBounds(date)

	visits, err := s.visitRepo.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load day visits: %w", err)
	}
	blackouts, err := s.blackoutRepo.ListOverlapping(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load day blackouts: %w", err)
	}

	view := DayDetail(visits, blackouts, date)
	return &view, nil
}

// ListBlackouts returns every declared window.
func (s *Service) ListBlackouts(ctx context.Context) ([]blackout.Window, error) {
	return s.blackoutRepo.ListAll(ctx)
}

// CreateBlackout validates and stores a new window. Validation happens
// before any store write; the overlap check is advisory and reported
// back, never enforced.
func (s *Service) CreateBlackout(ctx context.Context, operatorEmail string, req *blackout.CreateWindowRequest) (*blackout.CreateWindowResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, xerrors.ErrInvalidRange
	}

	existing, err := s.blackoutRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing blackouts: %w", err)
	}
	conflicts := WouldConflict(req.StartTime, req.EndTime, existing)

	w := &blackout.Window{
		ID:        ulid.Make().String(),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		CreatedBy: operatorEmail,
	}
	if err := s.blackoutRepo.Create(ctx, w); err != nil {
		s.logger.Error("failed to create blackout", zap.Error(err))
		return nil, err
	}

	s.logger.Info("blackout created",
		zap.String("id", w.ID),
		zap.Time("start", w.StartTime),
		zap.Time("end", w.EndTime),
		zap.Bool("conflicts", conflicts),
		zap.String("operator", operatorEmail),
	)
	s.notifyCalendar(ctx)

	return &blackout.CreateWindowResponse{Window: *w, Conflicts: conflicts}, nil
}

// QuickFill creates a window from a named preset on a given date.
func (s *Service) QuickFill(ctx context.Context, operatorEmail string, req *blackout.QuickFillRequest) (*blackout.CreateWindowResponse, error) {
	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var start, end time.Time
	switch req.Preset {
	case "full_day":
		start, end = blackout.FullDay(date)
	case "morning":
		start, end = blackout.Morning(date)
	case "afternoon":
		start, end = blackout.Afternoon(date)
	default:
		return nil, fmt.Errorf("%w: unknown preset %q", xerrors.ErrBadRequest, req.Preset)
	}

	return s.CreateBlackout(ctx, operatorEmail, &blackout.CreateWindowRequest{
		StartTime: start,
		EndTime:   end,
		Reason:    req.Reason,
	})
}

// DeleteBlackout removes a window. Edits are modeled as delete plus
// recreate, so this is the only mutation windows support.
func (s *Service) DeleteBlackout(ctx context.Context, operatorEmail, id string) error {
	if err := s.blackoutRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blackout deleted",
		zap.String("id", id),
		zap.String("operator", operatorEmail),
	)
	s.notifyCalendar(ctx)
	return nil
}

// notifyCalendar is best effort: a failed broadcast is logged and
// swallowed because manual refresh remains correct.
func (s *Service) notifyCalendar(ctx context.Context) {
	if err := s.bus.Publish(ctx, realtime.NewCalendarEvent()); err != nil {
		s.logger.Warn("failed to broadcast calendar change", zap.Error(err))
	}
}
