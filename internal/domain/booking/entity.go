// internal/domain/booking/entity.go
package booking

import (
	"database/sql"
	"time"

	"decora-admin/internal/domain/customer"
	"decora-admin/internal/domain/pipeline"
)

// VisitMode says where the appointment takes place.
type VisitMode string

const (
	ModeInStore   VisitMode = "in_store"
	ModeAtAddress VisitMode = "at_address"
	ModeRemote    VisitMode = "remote"
	ModeOther     VisitMode = "other"
)

// Valid reports whether m is an enumerated visit mode.
func (m VisitMode) Valid() bool {
	switch m {
	case ModeInStore, ModeAtAddress, ModeRemote, ModeOther:
		return true
	}
	return false
}

// Visit is a confirmed appointment. End is always after Start; address
// fields are only populated when the mode is at_address. Visits are
// never deleted by this service, only edited or moved along the
// pipeline.
type Visit struct {
	ID        string    `json:"id" db:"id"`
	StartTime time.Time `json:"start_time" db:"start_time"`
	EndTime   time.Time `json:"end_time" db:"end_time"`

	FullName string         `json:"full_name" db:"full_name"`
	Phone    string         `json:"phone" db:"phone"`
	Email    sql.NullString `json:"email,omitempty" db:"email"`

	Mode        VisitMode      `json:"mode" db:"mode"`
	AddressLine sql.NullString `json:"address_line,omitempty" db:"address_line"`
	City        sql.NullString `json:"city,omitempty" db:"city"`
	PostalCode  sql.NullString `json:"postal_code,omitempty" db:"postal_code"`

	Message sql.NullString  `json:"message,omitempty" db:"message"`
	Service string          `json:"service" db:"service"`
	Status  pipeline.Status `json:"status" db:"status"`

	// CustomerKey is the stored canonical key, when the booking flow
	// already knows it. Identity derivation falls back to email/phone.
	CustomerKey sql.NullString `json:"customer_key,omitempty" db:"customer_key"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Enquiry is an unscheduled contact request: the same identity, status
// and message fields as a Visit, minus the start/end instants.
type Enquiry struct {
	ID string `json:"id" db:"id"`

	FullName string         `json:"full_name" db:"full_name"`
	Phone    string         `json:"phone" db:"phone"`
	Email    sql.NullString `json:"email,omitempty" db:"email"`
	City     sql.NullString `json:"city,omitempty" db:"city"`

	Message sql.NullString  `json:"message,omitempty" db:"message"`
	Service string          `json:"service" db:"service"`
	Status  pipeline.Status `json:"status" db:"status"`

	CustomerKey sql.NullString `json:"customer_key,omitempty" db:"customer_key"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AsRecord flattens the visit for identity resolution. A visit's
// recency is its start instant.
func (v Visit) AsRecord() customer.Record {
	return customer.Record{
		RecordID:  v.ID,
		StoredKey: v.CustomerKey.String,
		FullName:  v.FullName,
		Phone:     v.Phone,
		Email:     v.Email.String,
		City:      v.City.String,
		Service:   v.Service,
		Status:    v.Status,
		Recency:   v.StartTime,
		Scheduled: true,
	}
}

// IdentityKey derives the visit's canonical customer key.
func (v Visit) IdentityKey() customer.Key {
	return v.AsRecord().Key()
}

// AsRecord flattens the enquiry. An enquiry's recency is its creation
// instant, since it has no start.
func (e Enquiry) AsRecord() customer.Record {
	return customer.Record{
		RecordID:  e.ID,
		StoredKey: e.CustomerKey.String,
		FullName:  e.FullName,
		Phone:     e.Phone,
		Email:     e.Email.String,
		City:      e.City.String,
		Service:   e.Service,
		Status:    e.Status,
		Recency:   e.CreatedAt,
	}
}

// IdentityKey derives the enquiry's canonical customer key.
func (e Enquiry) IdentityKey() customer.Key {
	return e.AsRecord().Key()
}
