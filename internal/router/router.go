package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"skillpath/internal/auth"
	"skillpath/internal/config"
	"skillpath/internal/handler"
	"skillpath/internal/logger"
	"skillpath/internal/middleware"
	"skillpath/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logg *logger.Logger,
	jwtService *auth.JWTService,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	skillHandler *handler.SkillHandler,
	progressHandler *handler.ProgressHandler,
) {
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logg))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/skills", skillHandler.ListSkills)
	api.GET("/roadmap/:skillId", skillHandler.GetRoadmap)

	// Secured routes (require an open session)
	secured := api.Group("", middleware.RequireSession(jwtService, authService, cfg.SessionCookie))

	secured.POST("/logout", authHandler.Logout)
	secured.GET("/user", userHandler.GetCurrentUser)

	// Progress routes
	secured.GET("/progress/:roadmapId", progressHandler.GetProgress)
	secured.POST("/progress/:roadmapId", progressHandler.UpdateProgress)
	secured.GET("/progress/:roadmapId/summary", progressHandler.GetSummary)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
