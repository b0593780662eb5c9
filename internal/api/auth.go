package api

import (
	"context"
	"net/http"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the payload of a successful login or refresh. Backends
// differ on the exact shape: some wrap it in the success envelope, some
// inline the user record, some only return the token and roles.
type LoginResult struct {
	Success   *bool    `json:"success,omitempty"`
	Token     string   `json:"token"`
	ExpiresIn int64    `json:"expiresIn,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Message   string   `json:"message,omitempty"`
	User      *Profile `json:"user,omitempty"`
}

// Profile is the user record from the profile endpoint; every field is
// best-effort.
type Profile struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
	ManagerID  string `json:"managerId,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", Credentials{Email: email, Password: password}, &res, reqOpts{noAuth: true, noRetry: true})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "login failed"
		}
		return nil, &Error{Status: http.StatusUnauthorized, Code: "login_failed", Message: msg}
	}
	return &res, nil
}

// Refresh exchanges the current session for a fresh token. The bearer is
// passed explicitly so the caller controls which session is being renewed.
func (c *Client) Refresh(ctx context.Context, bearer string) (*LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/refresh", struct{}{}, &res, reqOpts{bearer: bearer, noRetry: true})
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		msg := res.Message
		if msg == "" {
			msg = "token refresh failed"
		}
		return nil, &Error{Status: http.StatusUnauthorized, Code: "refresh_failed", Message: msg}
	}
	return &res, nil
}

func (c *Client) Profile(ctx context.Context, bearer string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &p, reqOpts{bearer: bearer, noRetry: true}); err != nil {
		return nil, err
	}
	return &p, nil
}
