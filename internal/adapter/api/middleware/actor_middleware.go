package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"trazot/internal/domain/entity"
)

// ActorMiddleware binds the acting user identity from the X-User-ID header.
// There is no end-user authentication system; session identity is an explicit
// value passed into every operation rather than ambient state.
type ActorMiddleware struct{}

func NewActorMiddleware() *ActorMiddleware {
	return &ActorMiddleware{}
}

// Bind sets "uid" from the header, defaulting to the guest sentinel.
func (m *ActorMiddleware) Bind(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := c.Request().Header.Get("X-User-ID")
		if uid == "" {
			uid = entity.GuestID
		}
		c.Set("uid", uid)
		return next(c)
	}
}

// Require rejects requests that carry no real user identity.
func (m *ActorMiddleware) Require(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid := c.Request().Header.Get("X-User-ID")
		if uid == "" || uid == entity.GuestID {
			return echo.NewHTTPError(http.StatusUnauthorized, "X-User-ID header is required")
		}
		c.Set("uid", uid)
		return next(c)
	}
}
