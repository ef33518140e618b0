package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "skillpath/internal/errors"
	"skillpath/internal/middleware"
	"skillpath/internal/service"
)

// ProgressHandler handles progress endpoints. Every route sits behind RequireSession.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new progress handler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// UpdateProgressRequest carries the complete set of completed step ids.
type UpdateProgressRequest struct {
	CompletedSteps []string `json:"completedSteps"`
}

// EmptyProgressResponse is returned when nothing has been recorded yet.
type EmptyProgressResponse struct {
	CompletedSteps []string `json:"completedSteps"`
}

// GetProgress godoc
// @Summary Get the user's progress on a roadmap
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param roadmapId path int true "Roadmap ID"
// @Success 200 {object} model.Progress
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress/{roadmapId} [get]
func (h *ProgressHandler) GetProgress(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	progress, err := h.progressService.GetProgress(c.Request().Context(), user.ID, parseID(c.Param("roadmapId")))
	if err != nil {
		return internalError(err)
	}
	if progress == nil {
		return c.JSON(http.StatusOK, EmptyProgressResponse{CompletedSteps: []string{}})
	}
	return c.JSON(http.StatusOK, progress)
}

// UpdateProgress godoc
// @Summary Replace the user's completed steps on a roadmap
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param roadmapId path int true "Roadmap ID"
// @Param request body UpdateProgressRequest true "Completed step ids"
// @Success 200 {object} model.Progress
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress/{roadmapId} [post]
func (h *ProgressHandler) UpdateProgress(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	var req UpdateProgressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	progress, err := h.progressService.UpdateProgress(
		c.Request().Context(),
		user.ID,
		parseID(c.Param("roadmapId")),
		req.CompletedSteps,
	)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, progress)
}

// GetSummary godoc
// @Summary Summarize the user's progress on a roadmap
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param roadmapId path int true "Roadmap ID"
// @Success 200 {object} service.ProgressSummary
// @Failure 401 {string} string "Unauthorized"
// @Failure 404 {string} string "Roadmap not found"
// @Failure 500 {object} errors.ErrorResponse
// @Router /progress/{roadmapId}/summary [get]
func (h *ProgressHandler) GetSummary(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.Unauthorized(c)
	}

	summary, err := h.progressService.Summary(c.Request().Context(), user.ID, parseID(c.Param("roadmapId")))
	if err != nil {
		if errors.Is(err, apperrors.ErrRoadmapNotFound) {
			return c.String(http.StatusNotFound, apperrors.ErrRoadmapNotFound.Error())
		}
		return internalError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

func internalError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
