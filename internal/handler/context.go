package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/haapio/accounts/internal/store"
)

func getCtxUser(c echo.Context) *store.User {
	if u, ok := c.Get("user").(*store.User); ok {
		return u
	}
	return nil
}

func getCtxSessionID(c echo.Context) string {
	if id, ok := c.Get("session_id").(string); ok {
		return id
	}
	return ""
}
