package testutil

import (
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

type MockCookieService struct {
	mock.Mock
}

func (m *MockCookieService) GetSessionID(c echo.Context) (string, error) {
	args := m.Called(c)
	return args.String(0), args.Error(1)
}

func (m *MockCookieService) SetSessionCookie(c echo.Context, sessionID string) error {
	args := m.Called(c, sessionID)
	return args.Error(0)
}
