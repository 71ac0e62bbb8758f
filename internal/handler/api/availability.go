package api

import (
	"errors"
	"net/http"
	"time"

	"reservation-engine/internal/domain/reservation"
	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
	recurrence   queries.RecurrenceQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries, recurrence queries.RecurrenceQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		recurrence:   recurrence,
	}
}

// @Summary Check availability
// @Description List open slots for a resource over a window
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param start_date query string true "Window start (RFC3339)"
// @Param end_date query string true "Window end (RFC3339)"
// @Param party_size query int false "Party size"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /resources/{id}/availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CheckAvailabilityRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	view, err := h.availability.Check(c.Request.Context(), queries.CheckAvailabilityParams{
		ResourceID: id,
		Start:      req.StartDate,
		End:        req.EndDate,
		PartySize:  req.PartySize,
	})
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Preview recurring occurrences
// @Description Expand a recurrence pattern and flag per-occurrence availability
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PreviewRecurrenceRequest true "Recurrence definition"
// @Success 200 {array} resdto.OccurrenceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /availability/recurrence-preview [post]
func (h *AvailabilityHandler) PreviewRecurrence(c *gin.Context) {
	var req reqdto.PreviewRecurrenceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	views, err := h.recurrence.Preview(c.Request.Context(), queries.PreviewOccurrencesParams{
		ResourceID:  req.ResourceID,
		Pattern:     reservation.Pattern(req.Pattern),
		Start:       req.StartDate,
		Until:       req.Until,
		Duration:    time.Duration(req.DurationMinutes) * time.Minute,
		PartySize:   req.PartySize,
		Exceptions:  req.Exceptions,
		CustomDates: req.CustomDates,
	})
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOccurrenceViews(views))
}

func (h *AvailabilityHandler) respondQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid recurrence definition",
		})
	case errors.Is(err, errs.ErrResourceInactive):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Resource is not active",
		})
	case errors.Is(err, errs.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Party size exceeds resource capacity",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
