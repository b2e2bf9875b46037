// internal/domain/booking/dto.go
package booking

import (
	"time"

	"decora-admin/internal/domain/blackout"
)

type CreateVisitRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time"`

	FullName string `json:"full_name" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`

	Mode        string `json:"mode" binding:"omitempty,oneof=in_store at_address remote other"`
	AddressLine string `json:"address_line" binding:"max=255"`
	City        string `json:"city" binding:"max=120"`
	PostalCode  string `json:"postal_code" binding:"max=10"`

	Message string `json:"message" binding:"max=2000"`
	Service string `json:"service" binding:"max=120"`
}

type CreateEnquiryRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
	City     string `json:"city" binding:"max=120"`
	Message  string `json:"message" binding:"max=2000"`
	Service  string `json:"service" binding:"max=120"`
}

// UpdateVisitRequest carries an operator's direct field edits. Nil
// pointers mean "leave unchanged"; status has its own endpoint.
type UpdateVisitRequest struct {
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	FullName    *string    `json:"full_name" binding:"omitempty,max=255"`
	Phone       *string    `json:"phone" binding:"omitempty,max=20"`
	Email       *string    `json:"email" binding:"omitempty,email,max=255"`
	Mode        *string    `json:"mode" binding:"omitempty,oneof=in_store at_address remote other"`
	AddressLine *string    `json:"address_line" binding:"omitempty,max=255"`
	City        *string    `json:"city" binding:"omitempty,max=120"`
	PostalCode  *string    `json:"postal_code" binding:"omitempty,max=10"`
	Message     *string    `json:"message" binding:"omitempty,max=2000"`
	Service     *string    `json:"service" binding:"omitempty,max=120"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListFilters struct {
	Status string    `form:"status"`
	From   time.Time `form:"from" time_format:"2006-01-02"`
	To     time.Time `form:"to" time_format:"2006-01-02"`
	Search string    `form:"search"`
	Limit  int       `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// RecordsResponse is the bulk read payload the admin views load on
// refresh: flat arrays, no pagination guarantee beyond the limit hint.
type RecordsResponse struct {
	Bookings  []Visit           `json:"bookings"`
	Enquiries []Enquiry         `json:"enquiries"`
	Blackouts []blackout.Window `json:"blackouts"`
}
