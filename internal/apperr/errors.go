// Package apperr defines the error taxonomy shared by givo components and
// translates it into messages suitable for showing to the user.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Components wrap them so callers can use errors.Is.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorageRead        = errors.New("storage read failed")
	ErrStorageWrite       = errors.New("storage write failed")
	ErrValidation         = errors.New("invalid input")
	ErrNetworkUnavailable = errors.New("network unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRequestFailed      = errors.New("request failed")
)

// Validation returns an ErrValidation carrying a human readable reason.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Message converts err into a short notification for the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return strings.TrimPrefix(err.Error(), ErrValidation.Error()+": ")
	case errors.Is(err, ErrNetworkUnavailable):
		return "No connection. Check your connection and try again."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrStorageUnavailable):
		return "Local storage is unavailable."
	case errors.Is(err, ErrStorageRead):
		return "Could not load your data."
	case errors.Is(err, ErrStorageWrite):
		return "Could not save your changes."
	case errors.Is(err, ErrRequestFailed):
		return err.Error()
	default:
		return "Something went wrong: " + err.Error()
	}
}
