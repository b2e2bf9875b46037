// internal/handlers/calendar/calendar_handler.go
package calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"
	"decora-admin/internal/pkg/timeutil"
	service "decora-admin/internal/service/availability"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	availabilityService *service.Service
}

func NewCalendarHandler(availabilityService *service.Service) *CalendarHandler {
	return &CalendarHandler{
		availabilityService: availabilityService,
	}
}

// Month returns the grid plus per-day indicator counts for one month.
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		response.Error(c, http.StatusBadRequest, "invalid year", err)
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		response.Error(c, http.StatusBadRequest, "invalid month", err)
		return
	}

	view, err := h.availabilityService.Month(c.Request.Context(), year, time.Month(month))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load month", err)
		return
	}

	response.Success(c, http.StatusOK, "month retrieved", view)
}

// Day returns the detail panel for one local date.
func (h *CalendarHandler) Day(c *gin.Context) {
	date, err := timeutil.ParseDate(c.Param("date"))
	if errors.Is(err, xerrors.ErrInvalidDate) {
		response.Error(c, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", err)
		return
	}

	view, err := h.availabilityService.Day(c.Request.Context(), date)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load day", err)
		return
	}

	response.Success(c, http.StatusOK, "day retrieved", view)
}
