// internal/handlers/booking/intake_handler.go
package booking

import (
	"errors"
	"net/http"

	"decora-admin/internal/domain/booking"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/booking"

	"github.com/gin-gonic/gin"
)

// IntakeHandler receives submissions from the public marketing site.
// These routes sit behind the form-token middleware, not operator auth.
type IntakeHandler struct {
	bookingService *service.Service
}

func NewIntakeHandler(bookingService *service.Service) *IntakeHandler {
	return &IntakeHandler{
		bookingService: bookingService,
	}
}

// CreateVisit stores a booking form submission.
func (h *IntakeHandler) CreateVisit(c *gin.Context) {
	var req booking.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	visit, err := h.bookingService.CreateVisit(c.Request.Context(), &req)
	switch {
	case errors.Is(err, xerrors.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "end must be after start", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to create booking", err)
		return
	}

	response.Success(c, http.StatusCreated, "booking received", visit)
}

// CreateEnquiry stores a contact form submission.
func (h *IntakeHandler) CreateEnquiry(c *gin.Context) {
	var req booking.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	enquiry, err := h.bookingService.CreateEnquiry(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create enquiry", err)
		return
	}

	response.Success(c, http.StatusCreated, "enquiry received", enquiry)
}
