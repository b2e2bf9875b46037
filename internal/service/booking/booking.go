// internal/service/booking/booking.go
package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"decora-admin/internal/domain/booking"
	"decora-admin/internal/domain/pipeline"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/realtime"
	"decora-admin/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service owns the visit/enquiry lifecycle: public intake, operator
// edits, the bulk read the admin views refresh from, and the pipeline
// status mutation.
type Service struct {
	visitRepo    *postgres.VisitRepository
	enquiryRepo  *postgres.EnquiryRepository
	blackoutRepo *postgres.BlackoutRepository
	bus          realtime.Bus
	logger       *zap.Logger
}

func NewService(
	visitRepo *postgres.VisitRepository,
	enquiryRepo *postgres.EnquiryRepository,
	blackoutRepo *postgres.BlackoutRepository,
	bus realtime.Bus,
	logger *zap.Logger,
) *Service {
	return &Service{
		visitRepo:    visitRepo,
		enquiryRepo:  enquiryRepo,
		blackoutRepo: blackoutRepo,
		bus:          bus,
		logger:       logger,
	}
}

// Records is the bulk read every admin view starts from: flat arrays of
// bookings, enquiries and blackouts. Status/date/search filters narrow
// the bookings array only; the limit is a hint, callers must handle
// fewer or more records than requested.
func (s *Service) Records(ctx context.Context, filters *booking.ListFilters) (*booking.RecordsResponse, error) {
	visits, err := s.visitRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	limit := 0
	if filters != nil {
		limit = filters.Limit
	}
	enquiries, err := s.enquiryRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiries: %w", err)
	}
	blackouts, err := s.blackoutRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blackouts: %w", err)
	}

	return &booking.RecordsResponse{
		Bookings:  visits,
		Enquiries: enquiries,
		Blackouts: blackouts,
	}, nil
}

// CreateVisit stores a booking submitted from the marketing site. The
// end instant defaults to one hour after the start when the form omits
// it; a freshly created visit always enters the pipeline as new.
func (s *Service) CreateVisit(ctx context.Context, req *booking.CreateVisitRequest) (*booking.Visit, error) {
	end := req.EndTime
	if end.IsZero() {
		end = req.StartTime.Add(time.Hour)
	}
	if !end.After(req.StartTime) {
		return nil, xerrors.ErrInvalidRange
	}

	mode := booking.VisitMode(req.Mode)
	if req.Mode == "" {
		mode = booking.ModeInStore
	}

	v := &booking.Visit{
		ID:          ulid.Make().String(),
		StartTime:   req.StartTime,
		EndTime:     end,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Email:       nullable(req.Email),
		Mode:        mode,
		Message:     nullable(req.Message),
		Service:     req.Service,
		Status:      pipeline.StatusNew,
	}
	if mode == booking.ModeAtAddress {
		v.AddressLine = nullable(req.AddressLine)
		v.City = nullable(req.City)
		v.PostalCode = nullable(req.PostalCode)
	}
	v.CustomerKey = nullable(string(v.IdentityKey()))

	if err := s.visitRepo.Create(ctx, v); err != nil {
		s.logger.Error("failed to create visit", zap.Error(err))
		return nil, err
	}

	s.logger.Info("visit created",
		zap.String("id", v.ID),
		zap.Time("start", v.StartTime),
		zap.String("customer_key", string(v.IdentityKey())),
	)
	s.notifyCustomer(ctx, string(v.IdentityKey()))
	return v, nil
}

// CreateEnquiry stores an unscheduled contact request.
func (s *Service) CreateEnquiry(ctx context.Context, req *booking.CreateEnquiryRequest) (*booking.Enquiry, error) {
	e := &booking.Enquiry{
		ID:       ulid.Make().String(),
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    nullable(req.Email),
		City:     nullable(req.City),
		Message:  nullable(req.Message),
		Service:  req.Service,
		Status:   pipeline.StatusNew,
	}
	e.CustomerKey = nullable(string(e.IdentityKey()))

	if err := s.enquiryRepo.Create(ctx, e); err != nil {
		s.logger.Error("failed to create enquiry", zap.Error(err))
		return nil, err
	}

	s.logger.Info("enquiry created",
		zap.String("id", e.ID),
		zap.String("customer_key", string(e.IdentityKey())),
	)
	s.notifyCustomer(ctx, string(e.IdentityKey()))
	return e, nil
}

// UpdateVisit applies an operator's direct field edits. Fields left nil
// in the request are unchanged; status moves through SetStatus only.
func (s *Service) UpdateVisit(ctx context.Context, id string, req *booking.UpdateVisitRequest) (*booking.Visit, error) {
	v, err := s.visitRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		v.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		v.EndTime = *req.EndTime
	}
	if !v.EndTime.After(v.StartTime) {
		return nil, xerrors.ErrInvalidRange
	}
	if req.FullName != nil {
		v.FullName = *req.FullName
	}
	if req.Phone != nil {
		v.Phone = *req.Phone
	}
	if req.Email != nil {
		v.Email = nullable(*req.Email)
	}
	if req.Mode != nil {
		v.Mode = booking.VisitMode(*req.Mode)
	}
	if req.AddressLine != nil {
		v.AddressLine = nullable(*req.AddressLine)
	}
	if req.City != nil {
		v.City = nullable(*req.City)
	}
	if req.PostalCode != nil {
		v.PostalCode = nullable(*req.PostalCode)
	}
	if req.Message != nil {
		v.Message = nullable(*req.Message)
	}
	if req.Service != nil {
		v.Service = *req.Service
	}

	if err := s.visitRepo.Update(ctx, v); err != nil {
		s.logger.Error("failed to update visit", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	s.logger.Info("visit updated", zap.String("id", id))
	s.notifyCustomer(ctx, string(v.IdentityKey()))
	return v, nil
}

// SetStatus performs the single-field pipeline mutation on a visit or
// enquiry. Any status may follow any other; the record id space is
// shared between the two tables, so the visit table is tried first.
// On success a customer-changed event keyed by the record's identity
// goes out so every open admin session can refresh without a reload.
func (s *Service) SetStatus(ctx context.Context, id string, status pipeline.Status) error {
	if !status.Valid() {
		return xerrors.ErrInvalidStatus
	}

	var customerKey string
	v, err := s.visitRepo.UpdateStatus(ctx, id, status)
	switch {
	case err == nil:
		customerKey = string(v.IdentityKey())
	case errors.Is(err, xerrors.ErrNotFound):
		e, err2 := s.enquiryRepo.UpdateStatus(ctx, id, status)
		if err2 != nil {
			return err2
		}
		customerKey = string(e.IdentityKey())
	default:
		return err
	}

	s.logger.Info("status updated",
		zap.String("id", id),
		zap.String("status", string(status)),
		zap.String("customer_key", customerKey),
	)
	s.notifyCustomer(ctx, customerKey)
	return nil
}

// notifyCustomer is best effort; a failed broadcast must never surface
// as a user-facing error because polling remains correct.
func (s *Service) notifyCustomer(ctx context.Context, customerKey string) {
	if customerKey == "" {
		return
	}
	if err := s.bus.Publish(ctx, realtime.NewCustomerEvent(customerKey)); err != nil {
		s.logger.Warn("failed to broadcast customer change",
			zap.String("customer_key", customerKey),
			zap.Error(err),
		)
	}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
