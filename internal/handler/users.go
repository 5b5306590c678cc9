package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haapio/accounts/internal/service"
	"github.com/haapio/accounts/internal/store"
)

type UserWriter interface {
	CreateUser(ctx context.Context, email, password string) (*store.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	UpdateUserRole(ctx context.Context, userID int64, role store.Role) error
	DeleteUser(ctx context.Context, userID int64) error
}

type UserReader interface {
	EmailAvailable(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*store.User, error)
}

type UserServicer interface {
	UserWriter
	UserReader
}

func SetupUserRoutes(
	g *echo.Group,
	userService UserServicer,
	authorizer PermissionChecker,
) {
	h := NewUserHandler(userService)
	g.POST("/api/users", h.PostUsers)
	g.GET("/api/users/email-available", h.GetEmailAvailable)

	authed := g.Group("/api/users", IsAuthenticated)
	authed.PATCH("/password", h.PatchPassword)
	authed.GET("", h.GetUsers, RequirePermission(authorizer, store.Read))
	authed.DELETE("/:user_id", h.DeleteUser, RequirePermission(authorizer, store.DeleteUser))
	authed.PATCH("/:user_id/role", h.PatchUserRole, RequirePermission(authorizer, store.PromoteOrDemoteUser))
	authed.PATCH("/:user_id/naughty", h.PatchMarkNaughty, RequirePermission(authorizer, store.MarkAsNaughty))
}

type UserHandler struct {
	userService UserServicer
}

func NewUserHandler(userService UserServicer) *UserHandler {
	return &UserHandler{userService}
}

func (h *UserHandler) PostUsers(c echo.Context) error {
	p := new(RegisterParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user data").WithInternal(err)
	}

	u, err := h.userService.CreateUser(c.Request().Context(), p.Email, p.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"user": u})
}

func (h *UserHandler) GetEmailAvailable(c echo.Context) error {
	p := new(EmailParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid email data").WithInternal(err)
	}

	available, err := h.userService.EmailAvailable(c.Request().Context(), p.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"available": available})
}

func (h *UserHandler) PatchPassword(c echo.Context) error {
	p := new(ChangePasswordParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid password data").WithInternal(err)
	}

	u := getCtxUser(c)
	if err := h.userService.ChangePassword(
		c.Request().Context(), u.UserID, p.OldPassword, p.NewPassword,
	); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	p := new(UserIDParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id").WithInternal(err)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), p.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) PatchUserRole(c echo.Context) error {
	p := new(UserRoleParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role data").WithInternal(err)
	}

	role, err := store.ParseRole(p.Role)
	if err != nil {
		return service.NewValidationError(service.MsgInvalidRole)
	}

	if err := h.userService.UpdateUserRole(c.Request().Context(), p.UserID, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) PatchMarkNaughty(c echo.Context) error {
	p := new(UserIDParams)
	if err := c.Bind(p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id").WithInternal(err)
	}

	if err := h.userService.UpdateUserRole(
		c.Request().Context(), p.UserID, store.RoleNaughty,
	); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
