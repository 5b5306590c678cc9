package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/haapio/accounts/internal/service"
	"github.com/haapio/accounts/internal/store"
)

type SessionServicer interface {
	EnsureSession(sessionID string) store.Session
	CurrentUser(ctx context.Context, sessionID string) (*store.User, error)
}

type SessionCookieServicer interface {
	GetSessionID(echo.Context) (string, error)
	SetSessionCookie(echo.Context, string) error
}

type PermissionChecker interface {
	Has(store.Role, store.Permission) bool
}

// SessionMiddleware runs on every route: it verifies the cookie
// signature, resolves (or creates) the server-side session and puts the
// session id and the current principal into the request context. A
// cookie that is absent or fails signature verification is treated the
// same as no session at all.
func SessionMiddleware(
	sessions SessionServicer,
	cookies SessionCookieServicer,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID, _ := cookies.GetSessionID(c)
			session := sessions.EnsureSession(sessionID)
			// the cookie is re-issued on every request so its expiry
			// slides together with the server-side inactivity window
			if err := cookies.SetSessionCookie(c, session.SessionID); err != nil {
				return service.NewInternal(err)
			}
			c.Set("session_id", session.SessionID)

			u, err := sessions.CurrentUser(c.Request().Context(), session.SessionID)
			if err != nil {
				return err
			}
			if u != nil {
				c.Set("user", u)
			}
			return next(c)
		}
	}
}

func IsAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if getCtxUser(c) == nil {
			return service.NewLoginRequired()
		}
		return next(c)
	}
}

// RequirePermission gates a route on the current principal's role
// holding the permission. Runs after IsAuthenticated.
func RequirePermission(
	authz PermissionChecker,
	perm store.Permission,
) func(next echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := getCtxUser(c)
			if u == nil {
				return service.NewLoginRequired()
			}
			if !authz.Has(u.UserRole, perm) {
				return service.NewForbidden()
			}
			return next(c)
		}
	}
}
