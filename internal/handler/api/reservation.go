package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qs queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create reservation
// @Description Book a resource for a time window
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.commands.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		// Created but unreadable: surface the id so the client can retry the read.
		c.JSON(http.StatusCreated, resdto.CreatedReservationResponse{ID: id})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Confirm reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) error {
		return h.commands.Confirm(c.Request.Context(), id)
	}, "confirmed")
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	var req reqdto.CancelReservationRequest
	// Body is optional for cancellation.
	_ = c.ShouldBindJSON(&req)

	h.lifecycle(c, func(id uuid.UUID) error {
		return h.commands.Cancel(c.Request.Context(), id, req.Reason)
	}, "cancelled")
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) error {
		return h.commands.Complete(c.Request.Context(), id)
	}, "completed")
}

// @Summary Mark reservation as no-show
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/no-show [post]
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) error {
		return h.commands.MarkNoShow(c.Request.Context(), id)
	}, "no-show")
}

// @Summary Record reservation payment
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.PayReservationRequest true "Payment details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/payment [post]
func (h *ReservationHandler) PayReservation(c *gin.Context) {
	var req reqdto.PayReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	h.lifecycle(c, func(id uuid.UUID) error {
		return h.commands.MarkAsPaid(c.Request.Context(), id, req.PaymentDetails)
	}, "paid")
}

// @Summary Reschedule reservation
// @Description Book a replacement window and mark the original rescheduled
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RescheduleReservationRequest true "New window"
// @Success 201 {object} resdto.CreatedReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/reschedule [post]
func (h *ReservationHandler) RescheduleReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.RescheduleReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	replacementID, err := h.commands.Reschedule(c.Request.Context(), commands.RescheduleCommand{
		ReservationID: id,
		NewStart:      req.NewStartDate,
		NewEnd:        req.NewEndDate,
	})
	if err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedReservationResponse{ID: replacementID})
}

func (h *ReservationHandler) lifecycle(c *gin.Context, apply func(id uuid.UUID) error, status string) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := apply(id); err != nil {
		h.respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     id,
		"status": status,
	})
}

func (h *ReservationHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Reservation not found",
		})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errors.Is(err, errs.ErrResourceInactive):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not active",
		})
	case errors.Is(err, errs.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Party size exceeds resource capacity",
		})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested window conflicts with an existing reservation",
		})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Invalid status transition",
		})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Validation failed",
		})
	case errors.Is(err, errs.ErrSequenceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Reservation numbering temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseTimeRangeQuery(c *gin.Context) (from, to time.Time, ok bool) {
	const layout = time.RFC3339

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameters 'from' and 'to' are required",
		})
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse(layout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'from' timestamp",
		})
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse(layout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid 'to' timestamp",
		})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
