// internal/handlers/blackout/blackout_handler.go
package blackout

import (
	"errors"
	"net/http"

	"decora-admin/internal/domain/blackout"
	"decora-admin/internal/middleware"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/availability"

	"github.com/gin-gonic/gin"
)

type BlackoutHandler struct {
	availabilityService *service.Service
}

func NewBlackoutHandler(availabilityService *service.Service) *BlackoutHandler {
	return &BlackoutHandler{
		availabilityService: availabilityService,
	}
}

// List returns every declared blackout window.
func (h *BlackoutHandler) List(c *gin.Context) {
	windows, err := h.availabilityService.ListBlackouts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list blackouts", err)
		return
	}

	response.Success(c, http.StatusOK, "blackouts retrieved", windows)
}

// Create declares a new window with explicit start and end.
func (h *BlackoutHandler) Create(c *gin.Context) {
	operator, _ := middleware.OperatorEmail(c)

	var req blackout.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.availabilityService.CreateBlackout(c.Request.Context(), operator, &req)
	switch {
	case errors.Is(err, xerrors.ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "end must be after start", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to create blackout", err)
		return
	}

	response.Success(c, http.StatusCreated, "blackout created", result)
}

// QuickFill declares a window from a named preset on one date.
func (h *BlackoutHandler) QuickFill(c *gin.Context) {
	operator, _ := middleware.OperatorEmail(c)

	var req blackout.QuickFillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.availabilityService.QuickFill(c.Request.Context(), operator, &req)
	switch {
	case errors.Is(err, xerrors.ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "invalid date", err)
		return
	case errors.Is(err, xerrors.ErrBadRequest):
		response.Error(c, http.StatusBadRequest, "invalid preset", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to create blackout", err)
		return
	}

	response.Success(c, http.StatusCreated, "blackout created", result)
}

// Delete removes a window.
func (h *BlackoutHandler) Delete(c *gin.Context) {
	operator, _ := middleware.OperatorEmail(c)
	id := c.Param("id")

	err := h.availabilityService.DeleteBlackout(c.Request.Context(), operator, id)
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		response.NotFound(c, "blackout not found")
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to delete blackout", err)
		return
	}

	response.Success(c, http.StatusOK, "blackout deleted", nil)
}
