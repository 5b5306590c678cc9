package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haapio/accounts/internal/store"
)

type AuthUserServicer interface {
	Authenticate(ctx context.Context, email, password string) (*store.User, error)
}

type AuthSessionServicer interface {
	Login(sessionID string, u *store.User) error
	Logout(sessionID string)
}

type PermissionLister interface {
	PermissionsFor(store.Role) []store.Permission
}

func SetupAuthRoutes(
	g *echo.Group,
	userService AuthUserServicer,
	sessionService AuthSessionServicer,
	authorizer PermissionLister,
) {
	h := NewAuthHandler(userService, sessionService, authorizer)
	g.POST("/api/auth/login", h.PostLogin)
	g.POST("/api/auth/logout", h.PostLogout)
	g.GET("/api/session/user", h.GetSessionUser)
	g.GET("/api/session/permissions", h.GetSessionPermissions)
}

type AuthHandler struct {
	userService    AuthUserServicer
	sessionService AuthSessionServicer
	authorizer     PermissionLister
}

func NewAuthHandler(
	userService AuthUserServicer,
	sessionService AuthSessionServicer,
	authorizer PermissionLister,
) *AuthHandler {
	return &AuthHandler{userService, sessionService, authorizer}
}

func (h *AuthHandler) PostLogin(c echo.Context) error {
	p := new(LoginParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login data").WithInternal(err)
	}

	u, err := h.userService.Authenticate(c.Request().Context(), p.Email, p.Password)
	if err != nil {
		return err
	}

	if err := h.sessionService.Login(getCtxSessionID(c), u); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": u,
		"next": p.Next,
	})
}

func (h *AuthHandler) PostLogout(c echo.Context) error {
	h.sessionService.Logout(getCtxSessionID(c))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) GetSessionUser(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user": getCtxUser(c)})
}

func (h *AuthHandler) GetSessionPermissions(c echo.Context) error {
	perms := []store.Permission{}
	if u := getCtxUser(c); u != nil {
		perms = h.authorizer.PermissionsFor(u.UserRole)
	}
	return c.JSON(http.StatusOK, echo.Map{"permissions": perms})
}
