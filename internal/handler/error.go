package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/haapio/accounts/internal/service"
)

func statusFor(kind service.ErrorKind) int {
	switch kind {
	case service.KindAuth, service.KindUnauthorized, service.KindLoginRequired:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindValidation, service.KindDuplicateUser, service.KindUniqueConstraint:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler converts the error taxonomy into transport responses.
// Internal causes are logged here and never serialized; the client only
// ever sees the message key.
func ErrorHandler(err error, c echo.Context) {
	var appErr *service.AppError
	if errors.As(err, &appErr) {
		status := statusFor(appErr.Kind)
		if appErr.Err != nil {
			c.Logger().Errorf(
				"%s [%d] %s: %+v",
				c.Request().URL.Path, status, appErr.MessageKey, appErr.Err,
			)
		}
		if err := c.JSON(status, echo.Map{"error": appErr.MessageKey}); err != nil {
			log.Printf("err writing error response: %+v\n", err)
		}
		return
	}

	switch e := err.(type) {
	case *echo.HTTPError:
		c.Logger().Errorf(
			"handler internal error %s [%d]: %+v\n",
			c.Request().URL.Path, e.Code, e.Internal,
		)
		if err := c.JSON(e.Code, echo.Map{"error": e.Message}); err != nil {
			log.Printf("err writing error response: %+v\n", err)
		}
	default:
		c.Logger().Errorf("handler error: %+v\n", e)
		if err := c.JSON(
			http.StatusInternalServerError,
			echo.Map{"error": service.MsgInternal},
		); err != nil {
			log.Printf("err writing error response: %+v\n", err)
		}
	}
}
