package session

import (
	"errors"
	"net/http"

	"leavectl/internal/api"
)

// ErrSessionSuperseded marks a login/refresh result that arrived after the
// session epoch moved on (a logout or a competing login won); the result
// is discarded rather than applied.
var ErrSessionSuperseded = errors.New("session superseded")

// AuthError is surfaced to the UI layer with a human-readable message.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

func loginError(err error) *AuthError {
	if errors.Is(err, api.ErrUnreachable) {
		return &AuthError{Message: "unable to connect to the server, check your connection", Err: err}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized && apiErr.Code != "login_failed" {
			return &AuthError{Message: "invalid email or password", Err: err}
		}
		if apiErr.Message != "" {
			return &AuthError{Message: apiErr.Message, Err: err}
		}
	}
	return &AuthError{Message: "login failed, please try again", Err: err}
}

func refreshError(err error) *AuthError {
	if errors.Is(err, api.ErrUnreachable) {
		return &AuthError{Message: "unable to connect to the server, check your connection", Err: err}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusUnauthorized {
			return &AuthError{Message: "your session has expired, please sign in again", Err: err}
		}
		if apiErr.Message != "" {
			return &AuthError{Message: apiErr.Message, Err: err}
		}
	}
	return &AuthError{Message: "session refresh failed", Err: err}
}
