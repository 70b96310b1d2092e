package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tourdetaxa/bogfoering-backend/internal/core/ports/services"
	"github.com/tourdetaxa/bogfoering-backend/internal/dto"
	"github.com/tourdetaxa/bogfoering-backend/internal/middleware"
	"github.com/tourdetaxa/bogfoering-backend/internal/platform/config"
)

// driveHandler handles Google Drive connection requests.
type driveHandler struct {
	driveService portssvc.DriveSvcFacade
	userService  portssvc.UserSvcFacade
	frontendURL  string
}

func newDriveHandler(ds portssvc.DriveSvcFacade, us portssvc.UserSvcFacade, cfg *config.Config) *driveHandler {
	return &driveHandler{driveService: ds, userService: us, frontendURL: cfg.FrontendBaseURL}
}

func registerDriveRoutes(rg *gin.RouterGroup, driveService portssvc.DriveSvcFacade, userService portssvc.UserSvcFacade, cfg *config.Config) {
	h := newDriveHandler(driveService, userService, cfg)

	drive := rg.Group("/drive")
	{
		drive.GET("/authorize", h.authorize)
		drive.GET("/status", h.status)
		drive.DELETE("/disconnect", h.disconnect)
		drive.GET("/files/:fileID/download", h.download)
	}
}

// registerDriveCallbackRoute registers the OAuth redirect target. Google calls
// it directly in the user's browser, so it sits outside the bearer-token group;
// the user id travels in the state parameter.
func registerDriveCallbackRoute(r *gin.Engine, driveService portssvc.DriveSvcFacade, cfg *config.Config) {
	h := newDriveHandler(driveService, nil, cfg)
	r.GET("/api/drive/callback", h.callback)
}

// authorize godoc
// @Summary Drive consent URL
// @Description Returns the Google OAuth consent URL for connecting the caller's Drive.
// @Tags drive
// @Produce json
// @Success 200 {object} dto.DriveAuthURLResponse
// @Failure 400 {object} ErrorResponse "Drive OAuth not configured"
// @Security BearerAuth
// @Router /drive/authorize [get]
func (h *driveHandler) authorize(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	authURL, err := h.driveService.AuthorizationURL(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DriveAuthURLResponse{AuthorizationURL: authURL})
}

// callback godoc
// @Summary Drive OAuth callback
// @Description Exchanges the authorization code, stores the credential, and redirects back to the frontend.
// @Tags drive
// @Param code query string true "Authorization code"
// @Param state query string true "User ID carried through the OAuth flow"
// @Success 302
// @Router /drive/callback [get]
func (h *driveHandler) callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	redirect := func(status string) {
		c.Redirect(http.StatusFound, h.frontendURL+"/?drive="+url.QueryEscape(status))
	}

	if errParam := c.Query("error"); errParam != "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Drive consent denied", slog.String("error", errParam))
		redirect("denied")
		return
	}
	if code == "" || state == "" {
		redirect("error")
		return
	}

	if err := h.driveService.HandleCallback(c.Request.Context(), code, state); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Drive callback failed", slog.String("error", err.Error()))
		redirect("error")
		return
	}
	redirect("connected")
}

// download godoc
// @Summary Download an archived file
// @Description Streams a file from the caller's Drive receipt archive.
// @Tags drive
// @Param fileID path string true "Drive file ID"
// @Produce application/octet-stream
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Drive not connected"
// @Failure 401 {object} ErrorResponse "Drive authorization expired"
// @Security BearerAuth
// @Router /drive/files/{fileID}/download [get]
func (h *driveHandler) download(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	content, file, err := h.driveService.DownloadFile(c.Request.Context(), actor.UserID, c.Param("fileID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, mimeType, content)
}

// status godoc
// @Summary Drive connection status
// @Tags drive
// @Produce json
// @Success 200 {object} dto.DriveStatusResponse
// @Security BearerAuth
// @Router /drive/status [get]
func (h *driveHandler) status(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	cred, err := h.driveService.Status(c.Request.Context(), actor.UserID)
	if err != nil {
		// Not connected is an ordinary status answer, not an error.
		c.JSON(http.StatusOK, dto.DriveStatusResponse{Connected: false})
		return
	}
	connectedAt := cred.ConnectedAt
	c.JSON(http.StatusOK, dto.DriveStatusResponse{
		Connected:   true,
		ConnectedAt: &connectedAt,
		Scopes:      cred.Scopes,
	})
}

// disconnect godoc
// @Summary Disconnect Drive
// @Description Removes the caller's stored Drive credential.
// @Tags drive
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /drive/disconnect [delete]
func (h *driveHandler) disconnect(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}
	removed, err := h.driveService.Disconnect(c.Request.Context(), actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: removed})
}
