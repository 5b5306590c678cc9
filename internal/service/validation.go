package service

import (
	"net/mail"
)

const (
	PasswordMinLength = 8
	PasswordMaxLength = 16
)

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError(MsgInvalidEmail)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return NewValidationError(MsgPasswordLength)
	}
	return nil
}
