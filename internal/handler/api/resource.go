package api

import (
	"errors"
	"net/http"

	reqdto "reservation-engine/internal/handler/dto/request"
	resdto "reservation-engine/internal/handler/dto/response"
	"reservation-engine/internal/pkg/errs"
	"reservation-engine/internal/usecase/commands"
	"reservation-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	commands     commands.ResourceCommands
	queries      queries.ResourceQueries
	reservations queries.ReservationQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, qs queries.ResourceQueries, reservations queries.ReservationQueries) *ResourceHandler {
	return &ResourceHandler{
		commands:     cmds,
		queries:      qs,
		reservations: reservations,
	}
}

// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource definition"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources [post]
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req reqdto.CreateResourceRequest
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
		c.JSON(http.StatusCreated, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary List resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param active_only query bool false "Only active resources"
// @Success 200 {array} resdto.ResourceResponse
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	views, err := h.queries.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ResourceResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromResourceView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Update resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Fields to change"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources/{id} [patch]
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.commands.Update(c.Request.Context(), req.ToCommand(id)); err != nil {
		h.respondCommandError(c, err)
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Delete resource
// @Description Remove a resource and all of its reservations
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.DeleteResourceResponse
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [delete]
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.commands.DeleteCascade(c.Request.Context(), id)
	if err != nil {
		h.respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DeleteResourceResponse{DeletedReservations: deleted})
}

// @Summary List reservations for a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /resources/{id}/reservations [get]
func (h *ResourceHandler) ListResourceReservations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	from, to, ok := parseTimeRangeQuery(c)
	if !ok {
		return
	}

	items, err := h.reservations.ListByResource(c.Request.Context(), id, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromReservationListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ResourceHandler) respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Resource not found",
		})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
