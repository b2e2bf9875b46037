// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"decora-admin/internal/domain/customer"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/realtime"
	"decora-admin/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service builds the deduplicated customer directory from the raw
// visit and enquiry tables and owns the per-customer notes.
type Service struct {
	visitRepo   *postgres.VisitRepository
	enquiryRepo *postgres.EnquiryRepository
	noteRepo    *postgres.NoteRepository
	bus         realtime.Bus
	logger      *zap.Logger
}

func NewService(
	visitRepo *postgres.VisitRepository,
	enquiryRepo *postgres.EnquiryRepository,
	noteRepo *postgres.NoteRepository,
	bus realtime.Bus,
	logger *zap.Logger,
) *Service {
	return &Service{
		visitRepo:   visitRepo,
		enquiryRepo: enquiryRepo,
		noteRepo:    noteRepo,
		bus:         bus,
		logger:      logger,
	}
}

// Directory is the customer list payload: the merged aggregates plus
// the raw records that carried no contact key and could not be merged.
type Directory struct {
	Customers  []customer.Aggregate `json:"customers"`
	Unresolved []customer.Record    `json:"unresolved,omitempty"`
}

// Aggregates recomputes the directory from every stored visit and
// enquiry. The merge runs on read rather than being materialized; a
// single business's pipeline is small enough that recomputing is cheap
// and nothing can drift stale.
func (s *Service) Aggregates(ctx context.Context) (*Directory, error) {
	visits, err := s.visitRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load visits: %w", err)
	}
	enquiries, err := s.enquiryRepo.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load enquiries: %w", err)
	}

	records := make([]customer.Record, 0, len(visits)+len(enquiries))
	for _, v := range visits {
		records = append(records, v.AsRecord())
	}
	for _, e := range enquiries {
		records = append(records, e.AsRecord())
	}

	byKey, unresolved := customer.Merge(records)

	customers := make([]customer.Aggregate, 0, len(byKey))
	for _, agg := range byKey {
		customers = append(customers, *agg)
	}
	sort.Slice(customers, func(i, j int) bool {
		if !customers[i].LastSeen.Equal(customers[j].LastSeen) {
			return customers[i].LastSeen.After(customers[j].LastSeen)
		}
		return customers[i].Key < customers[j].Key
	})

	if len(unresolved) > 0 {
		s.logger.Warn("records without contact key in directory",
			zap.Int("count", len(unresolved)),
		)
	}

	return &Directory{Customers: customers, Unresolved: unresolved}, nil
}

// AddNote attaches an operator note to a customer key. The key must be
// non-empty; notes on unresolved records are rejected because there is
// no identity to hang them on.
func (s *Service) AddNote(ctx context.Context, operatorEmail, rawKey, body string, images []string) (*customer.Note, error) {
	key := customer.Key(strings.TrimSpace(strings.ToLower(rawKey)))
	if key == "" {
		return nil, xerrors.ErrPartialKey
	}
	if strings.TrimSpace(body) == "" && len(images) == 0 {
		return nil, fmt.Errorf("%w: note needs a body or an image", xerrors.ErrBadRequest)
	}
	if images == nil {
		images = []string{}
	}

	n := &customer.Note{
		ID:          ulid.Make().String(),
		CustomerKey: key,
		AuthorEmail: operatorEmail,
		Body:        body,
		Images:      images,
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		s.logger.Error("failed to create note", zap.Error(err))
		return nil, err
	}

	s.logger.Info("note added",
		zap.String("id", n.ID),
		zap.String("customer_key", string(key)),
		zap.String("operator", operatorEmail),
	)
	if err := s.bus.Publish(ctx, realtime.NewCustomerEvent(string(key))); err != nil {
		s.logger.Warn("failed to broadcast note", zap.Error(err))
	}
	return n, nil
}

// ListNotes returns a customer's notes, newest first.
func (s *Service) ListNotes(ctx context.Context, rawKey string) ([]customer.Note, error) {
	key := customer.Key(strings.TrimSpace(strings.ToLower(rawKey)))
	if key == "" {
		return nil, xerrors.ErrPartialKey
	}
	return s.noteRepo.ListByCustomer(ctx, key)
}
