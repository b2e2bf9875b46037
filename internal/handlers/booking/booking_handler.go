// internal/handlers/booking/booking_handler.go
package booking

import (
	"errors"
	"net/http"

	"decora-admin/internal/domain/booking"
	"decora-admin/internal/domain/pipeline"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.Service
}

func NewBookingHandler(bookingService *service.Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

const defaultRecordsLimit = 500

// ListRecords returns the bulk snapshot the admin views refresh from.
func (h *BookingHandler) ListRecords(c *gin.Context) {
	var filters booking.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}
	if filters.Limit == 0 {
		filters.Limit = defaultRecordsLimit
	}

	records, err := h.bookingService.Records(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load records", err)
		return
	}

	response.Success(c, http.StatusOK, "records retrieved", records)
}

// UpdateVisit applies an operator's field edits to one visit.
func (h *BookingHandler) UpdateVisit(c *gin.Context) {
	id := c.Param("id")

	var req booking.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	visit, err := h.bookingService.UpdateVisit(c.Request.Context(), id, &req)
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "visit not found")
		return
	case errors.Is(err, xerrors.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "end must be after start", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to update visit", err)
		return
	}

	response.Success(c, http.StatusOK, "visit updated", visit)
}

// SetStatus moves a visit or enquiry to a new pipeline stage.
func (h *BookingHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")

	var req booking.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	err := h.bookingService.SetStatus(c.Request.Context(), id, pipeline.Status(req.Status))
	switch {
	case errors.Is(err, xerrors.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "unknown status", err)
		return
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "record not found")
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to update status", err)
		return
	}

	response.Success(c, http.StatusOK, "status updated", gin.H{
		"id":     id,
		"status": req.Status,
	})
}
