package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "skillpath/internal/errors"
	"skillpath/internal/service"
)

// SkillHandler handles catalog endpoints.
type SkillHandler struct {
	catalogService service.CatalogService
}

// NewSkillHandler creates a new skill handler.
func NewSkillHandler(catalogService service.CatalogService) *SkillHandler {
	return &SkillHandler{catalogService: catalogService}
}

// ListSkills godoc
// @Summary List skills
// @Tags skills
// @Produce json
// @Success 200 {array} model.Skill
// @Failure 500 {object} errors.ErrorResponse
// @Router /skills [get]
func (h *SkillHandler) ListSkills(c echo.Context) error {
	skills, err := h.catalogService.ListSkills(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
	}
	return c.JSON(http.StatusOK, skills)
}

// GetRoadmap godoc
// @Summary Get the roadmap of a skill
// @Tags skills
// @Produce json
// @Param skillId path int true "Skill ID"
// @Success 200 {object} model.Roadmap
// @Failure 404 {string} string "Roadmap not found"
// @Failure 500 {object} errors.ErrorResponse
// @Router /roadmap/{skillId} [get]
func (h *SkillHandler) GetRoadmap(c echo.Context) error {
	roadmap, err := h.catalogService.GetRoadmap(c.Request().Context(), parseID(c.Param("skillId")))
	if err != nil {
		if errors.Is(err, apperrors.ErrRoadmapNotFound) {
			return c.String(http.StatusNotFound, apperrors.ErrRoadmapNotFound.Error())
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
	}
	return c.JSON(http.StatusOK, roadmap)
}
