package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// afdelingHandler handles department management requests.
type afdelingHandler struct {
	afdelingService portssvc.AfdelingSvcFacade
	userService     portssvc.UserSvcFacade
}

func newAfdelingHandler(as portssvc.AfdelingSvcFacade, us portssvc.UserSvcFacade) *afdelingHandler {
	return &afdelingHandler{afdelingService: as, userService: us}
}

func registerAfdelingRoutes(admin *gin.RouterGroup, afdelingService portssvc.AfdelingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAfdelingHandler(afdelingService, userService)

	afdelinger := admin.Group("/afdelinger")
	{
		afdelinger.GET("", h.listAfdelinger)
		afdelinger.POST("", h.createAfdeling)
		afdelinger.DELETE("/:id", h.deleteAfdeling)
	}
}

// listAfdelinger godoc
// @Summary List departments
// @Description Lists all departments sorted by name; admin and superbruger.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.AfdelingResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/afdelinger [get]
func (h *afdelingHandler) listAfdelinger(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	afdelinger, err := h.afdelingService.ListAfdelinger(c.Request.Context(), *actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAfdelingResponseList(afdelinger))
}

// createAfdeling godoc
// @Summary Create department
// @Description Creates a department; superbruger only.
// @Tags admin
// @Accept json
// @Produce json
// @Param afdeling body dto.CreateAfdelingRequest true "Department details"
// @Success 201 {object} dto.AfdelingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Department name already exists"
// @Security BearerAuth
// @Router /admin/afdelinger [post]
func (h *afdelingHandler) createAfdeling(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.CreateAfdelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	created, err := h.afdelingService.CreateAfdeling(c.Request.Context(), *actor, req.Navn)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAfdelingResponse(created))
}

// deleteAfdeling godoc
// @Summary Delete department
// @Description Deletes a department; superbruger only. Refused while a user references it.
// @Tags admin
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ErrorResponse "Department still in use"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/afdelinger/{id} [delete]
func (h *afdelingHandler) deleteAfdeling(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	if err := h.afdelingService.DeleteAfdeling(c.Request.Context(), *actor, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
