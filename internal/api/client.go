package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// Client talks to the leave-management backend. It injects the session's
// bearer token on authenticated calls and, on a 401, refreshes the session
// once and retries the request once, mirroring the interceptor behavior of
// the web client.
type Client struct {
	base    string
	httpc   *http.Client
	token   func() string
	refresh func(context.Context) error
}

func New(base string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{base: strings.TrimRight(base, "/"), httpc: httpc}
}

// SetTokenSource wires the session's current bearer token into outgoing
// requests.
func (c *Client) SetTokenSource(fn func() string) { c.token = fn }

// SetRefreshFunc wires the session refresh invoked once when an
// authenticated request comes back 401.
func (c *Client) SetRefreshFunc(fn func(context.Context) error) { c.refresh = fn }

type reqOpts struct {
	bearer     string // explicit token, overrides the token source
	noAuth     bool   // credential endpoints carry no bearer
	noRetry    bool   // auth endpoints must not trigger a nested refresh
	idempotent bool   // mutating calls carry an Idempotency-Key
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, o reqOpts) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	idemKey := ""
	if o.idempotent {
		idemKey = uuid.NewString()
	}

	bearer := o.bearer
	if bearer == "" && !o.noAuth && c.token != nil {
		bearer = c.token()
	}

	resp, err := c.send(ctx, method, path, payload, bearer, idemKey)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !o.noRetry && o.bearer == "" && !o.noAuth && c.refresh != nil {
		drain(resp)
		if err := c.refresh(ctx); err != nil {
			return err
		}
		bearer = ""
		if c.token != nil {
			bearer = c.token()
		}
		resp, err = c.send(ctx, method, path, payload, bearer, idemKey)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return decodeBody(resp.StatusCode, raw, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, bearer, idemKey string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// envelope is the {success, data, error} wrapper some backend endpoints
// use; others return bare JSON. decodeBody copes with both.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *wireError      `json:"error"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func decodeBody(status int, raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)

	if status >= 400 {
		return errorFromBody(status, trimmed)
	}
	if out == nil || len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if env.Success != nil && !*env.Success {
				return errorFromEnvelope(status, env)
			}
			if env.Data != nil {
				if err := json.Unmarshal(env.Data, out); err != nil {
					return malformed(status)
				}
				return nil
			}
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return malformed(status)
	}
	return nil
}

func errorFromBody(status int, raw []byte) error {
	var env envelope
	if len(raw) > 0 && json.Unmarshal(raw, &env) == nil {
		if env.Error != nil || env.Message != "" {
			return errorFromEnvelope(status, env)
		}
	}
	return &Error{Status: status, Message: http.StatusText(status)}
}

func errorFromEnvelope(status int, env envelope) error {
	e := &Error{Status: status}
	if env.Error != nil {
		e.Code = env.Error.Code
		e.Message = env.Error.Message
	}
	if e.Message == "" {
		e.Message = env.Message
	}
	if e.Message == "" {
		if status >= 400 {
			e.Message = http.StatusText(status)
		} else {
			e.Message = "request failed"
		}
	}
	return e
}

func malformed(status int) error {
	return &Error{Status: status, Code: "bad_response", Message: "malformed server response"}
}
