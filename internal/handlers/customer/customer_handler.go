// internal/handlers/customer/customer_handler.go
package customer

import (
	"errors"
	"net/http"

	"decora-admin/internal/middleware"
	xerrors "decora-admin/internal/pkg/errors"
	"decora-admin/internal/pkg/response"
	service "decora-admin/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.Service
}

func NewCustomerHandler(customerService *service.Service) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// List returns the merged customer directory.
func (h *CustomerHandler) List(c *gin.Context) {
	directory, err := h.customerService.Aggregates(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", directory)
}

// ListNotes returns one customer's notes, newest first.
func (h *CustomerHandler) ListNotes(c *gin.Context) {
	key := c.Param("key")

	notes, err := h.customerService.ListNotes(c.Request.Context(), key)
	switch {
	case errors.Is(err, xerrors.ErrPartialKey):
		response.Error(c, http.StatusBadRequest, "customer key required", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to list notes", err)
		return
	}

	response.Success(c, http.StatusOK, "notes retrieved", gin.H{
		"notes": notes,
		"count": len(notes),
	})
}

type addNoteRequest struct {
	Body   string   `json:"body" binding:"max=4000"`
	Images []string `json:"images" binding:"omitempty,max=10,dive,url"`
}

// AddNote attaches a note to a customer.
func (h *CustomerHandler) AddNote(c *gin.Context) {
	operator, _ := middleware.OperatorEmail(c)
	key := c.Param("key")

	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	note, err := h.customerService.AddNote(c.Request.Context(), operator, key, req.Body, req.Images)
	switch {
	case errors.Is(err, xerrors.ErrPartialKey):
		response.Error(c, http.StatusBadRequest, "customer key required", err)
		return
	case errors.Is(err, xerrors.ErrBadRequest):
		response.Error(c, http.StatusBadRequest, "note needs a body or an image", err)
		return
	case err != nil:
		response.Error(c, http.StatusInternalServerError, "failed to add note", err)
		return
	}

	response.Success(c, http.StatusCreated, "note added", note)
}
