package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"skillpath/internal/auth"
	apperrors "skillpath/internal/errors"
	"skillpath/internal/model"
	"skillpath/internal/service"
)

const (
	tokenContextKey       = "token"
	currentUserContextKey = "currentUser"
	sessionIDContextKey   = "sessionID"
)

// RequireSession admits a request only when it carries a valid session token, from the
// Authorization header or the session cookie, whose session is still open. Otherwise it
// answers 401 before the handler runs.
func RequireSession(jwtService *auth.JWTService, authService service.AuthService, cookieName string) echo.MiddlewareFunc {
	validate := echojwt.WithConfig(echojwt.Config{
		ContextKey:  tokenContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + cookieName,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return Unauthorized(c)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return validate(func(c echo.Context) error {
			claims, ok := c.Get(tokenContextKey).(*auth.Claims)
			if !ok {
				return Unauthorized(c)
			}

			user, err := authService.CurrentUser(c.Request().Context(), claims.ID, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthorized) {
					return Unauthorized(c)
				}
				return err
			}

			SetSession(c, user, claims.ID)
			return next(c)
		})
	}
}

// Unauthorized writes the plain-text 401 response.
func Unauthorized(c echo.Context) error {
	return c.String(http.StatusUnauthorized, apperrors.ErrUnauthorized.Error())
}

// SetSession records the resolved user and session id on the request context.
func SetSession(c echo.Context, user *model.User, sessionID string) {
	c.Set(currentUserContextKey, user)
	c.Set(sessionIDContextKey, sessionID)
}

// CurrentUser returns the user resolved by RequireSession.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(currentUserContextKey).(*model.User)
	return user, ok && user != nil
}

// SessionID returns the session id resolved by RequireSession.
func SessionID(c echo.Context) (string, bool) {
	id, ok := c.Get(sessionIDContextKey).(string)
	return id, ok && id != ""
}
