// internal/domain/customer/aggregate.go
package customer

import (
	"time"

	"decora-admin/internal/domain/pipeline"
)

// Aggregate is the deduplicated view of one customer: the canonical key
// plus the "latest known" denormalized fields taken from the most recent
// raw record that shares the key.
type Aggregate struct {
	Key           Key             `json:"customer_key"`
	FullName      string          `json:"full_name"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	City          string          `json:"city,omitempty"`
	LastSeen      time.Time       `json:"last_seen"`
	LastService   string          `json:"last_service,omitempty"`
	LastStatus    pipeline.Status `json:"last_status"`
	BookingsCount int             `json:"bookings_count"`
}

// Merge groups raw records by derived key and folds each group into one
// aggregate with latest-wins semantics: denormalized fields are seeded
// from the first record seen and overwritten whenever a record is at
// least as recent as the aggregate's current latest instant (ties go to
// the record encountered later). Records with an empty key cannot be
// aggregated and are returned separately so callers can surface them
// instead of dropping them silently.
//
// The output map is a partition: every keyed input record belongs to
// exactly one aggregate, and BookingsCount counts the scheduled visits
// in the group.
func Merge(records []Record) (map[Key]*Aggregate, []Record) {
	aggregates := make(map[Key]*Aggregate)
	latest := make(map[Key]Record)
	var unresolved []Record

	for _, r := range records {
		key := r.Key()
		if key == "" {
			unresolved = append(unresolved, r)
			continue
		}

		agg, ok := aggregates[key]
		if !ok {
			agg = &Aggregate{Key: key}
			aggregates[key] = agg
			agg.absorb(r)
			latest[key] = r
			continue
		}

		if r.Scheduled {
			agg.BookingsCount++
		}
		if CompareRecency(r, latest[key]) >= 0 {
			agg.overwrite(r)
			latest[key] = r
		}
	}

	return aggregates, unresolved
}

// absorb seeds a fresh aggregate from its first record.
func (a *Aggregate) absorb(r Record) {
	a.overwrite(r)
	if r.Scheduled {
		a.BookingsCount = 1
	}
}

// overwrite applies a record that is at least as recent as the current
// latest. All denormalized fields come from that record wholesale; a
// per-field "keep the old value when the new one is blank" rule would
// make the merge depend on input order.
func (a *Aggregate) overwrite(r Record) {
	a.LastSeen = r.Recency
	a.LastStatus = r.Status
	a.FullName = r.FullName
	a.Phone = r.Phone
	a.Email = r.Email
	a.City = r.City
	a.LastService = r.Service
}
