package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// settingsHandler handles department settings requests.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
	userService     portssvc.UserSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade, us portssvc.UserSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss, userService: us}
}

// registerSettingsRoutes registers the afdeling-facing settings routes.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSettingsHandler(settingsService, userService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getOwnSettings)
		settings.PUT("", h.updateOwnSettings)
	}
}

// registerAdminSettingsRoutes registers the admin settings overview and update routes.
func registerAdminSettingsRoutes(admin *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade, userService portssvc.UserSvcFacade) {
	h := newSettingsHandler(settingsService, userService)

	settings := admin.Group("/settings")
	{
		settings.GET("/all", h.listAllSettings)
		settings.PUT("/:afdelingID", h.updateSettingsForAfdeling)
	}
}

// getOwnSettings godoc
// @Summary Own settings
// @Description Returns the acting department's settings, created with defaults on first access.
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getOwnSettings(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	settings, err := h.settingsService.GetOwnSettings(c.Request.Context(), *actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateOwnSettings godoc
// @Summary Update own settings
// @Description Merges a partial update into the acting department's settings. The voucher counter is untouched.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) updateOwnSettings(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	settings, err := h.settingsService.UpdateOwnSettings(c.Request.Context(), *actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// listAllSettings godoc
// @Summary All department settings
// @Description Returns every afdeling user's settings; admin and superbruger.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.AfdelingSettingsResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/settings/all [get]
func (h *settingsHandler) listAllSettings(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	all, err := h.settingsService.ListAllSettings(c.Request.Context(), *actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.AfdelingSettingsResponse, len(all))
	for i, a := range all {
		out[i] = dto.AfdelingSettingsResponse{
			AfdelingID:   a.AfdelingID,
			AfdelingNavn: a.AfdelingNavn,
			Settings:     dto.ToSettingsResponse(&all[i].Settings),
		}
	}
	c.JSON(http.StatusOK, out)
}

// updateSettingsForAfdeling godoc
// @Summary Update department settings
// @Description Merges a partial update into any department's settings; admin and superbruger.
// @Tags admin
// @Accept json
// @Produce json
// @Param afdelingID path string true "Afdeling user ID"
// @Param settings body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/settings/{afdelingID} [put]
func (h *settingsHandler) updateSettingsForAfdeling(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	settings, err := h.settingsService.UpdateSettingsForAfdeling(c.Request.Context(), *actor, c.Param("afdelingID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
