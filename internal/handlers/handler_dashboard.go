package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// dashboardHandler handles balance summary and history requests.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
	settingsService  portssvc.SettingsSvcFacade
	userService      portssvc.UserSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade, ss portssvc.SettingsSvcFacade, us portssvc.UserSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds, settingsService: ss, userService: us}
}

func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade, settingsService portssvc.SettingsSvcFacade, userService portssvc.UserSvcFacade) {
	h := newDashboardHandler(dashboardService, settingsService, userService)

	rg.GET("/dashboard/stats", h.getStats)
	rg.GET("/historik/regnskabsaar", h.listRegnskabsaar)
}

// getStats godoc
// @Summary Balance summary
// @Description Afdeling callers get their own department; admin callers get one department with afdeling_id, or the org-wide view without.
// @Tags dashboard
// @Produce json
// @Param afdeling_id query string false "Department filter (admin only)"
// @Param regnskabsaar query string false "Accounting year filter"
// @Success 200 {object} domain.DashboardStats
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getStats(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	stats, err := h.dashboardService.GetStats(c.Request.Context(), *actor,
		c.Query("afdeling_id"), c.Query("regnskabsaar"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// listRegnskabsaar godoc
// @Summary Accounting years
// @Description Lists the distinct accounting-year labels in use, descending; admin and superbruger.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.RegnskabsaarListResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /historik/regnskabsaar [get]
func (h *dashboardHandler) listRegnskabsaar(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	labels, err := h.settingsService.ListRegnskabsaar(c.Request.Context(), *actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RegnskabsaarListResponse{Regnskabsaar: labels})
}
