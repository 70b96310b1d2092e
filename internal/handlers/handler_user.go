package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
)

// userHandler handles admin user management requests.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerAdminRoutes registers the /admin group: user and department
// management plus the settings overview.
func registerAdminRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	admin := rg.Group("/admin")

	uh := newUserHandler(services.User)
	users := admin.Group("/users")
	{
		users.POST("", uh.createUser)
		users.GET("", uh.listUsers)
		users.DELETE("/:id", uh.deleteUser)
		users.PUT("/:id/password", uh.updatePassword)
		users.PUT("/:id/afdeling", uh.updateAfdelingNavn)
	}

	registerAfdelingRoutes(admin, services.Afdeling, services.User)
	registerAdminSettingsRoutes(admin, services.Settings, services.User)
}

// createUser godoc
// @Summary Create user
// @Description Creates a user; superbruger only. Afdeling users must carry afdeling_navn.
// @Tags admin
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username already exists"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *userHandler) createUser(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	created, err := h.userService.CreateUser(c.Request.Context(), *actor, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(created))
}

// listUsers godoc
// @Summary List users
// @Description Lists all live users; admin and superbruger.
// @Tags admin
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), *actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponseList(users))
}

// deleteUser godoc
// @Summary Delete user
// @Description Soft-deletes a user; superbruger only.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), *actor, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// updatePassword godoc
// @Summary Update user password
// @Description Replaces a user's password; superbruger only.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param password body dto.UpdatePasswordRequest true "New password"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/password [put]
func (h *userHandler) updatePassword(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if err := h.userService.UpdatePassword(c.Request.Context(), *actor, c.Param("id"), req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// updateAfdelingNavn godoc
// @Summary Rename afdeling user
// @Description Renames the department an afdeling user belongs to; superbruger only.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param afdeling body dto.UpdateAfdelingNavnRequest true "New department name"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/afdeling [put]
func (h *userHandler) updateAfdelingNavn(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	var req dto.UpdateAfdelingNavnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	if err := h.userService.UpdateAfdelingNavn(c.Request.Context(), *actor, c.Param("id"), req.AfdelingNavn); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
