package api

import (
	"context"
	"net/http"
	"net/url"

	"leavectl/internal/domain/leave"
)

// MyLeaves lists the caller's own leave requests.
func (c *Client) MyLeaves(ctx context.Context) ([]leave.Request, error) {
	var out []leave.Request
	if err := c.do(ctx, http.MethodGet, "/leaves/mine", nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

// SubordinateLeaves lists the requests awaiting the caller as a
// decision-maker.
func (c *Client) SubordinateLeaves(ctx context.Context) ([]leave.Request, error) {
	var out []leave.Request
	if err := c.do(ctx, http.MethodGet, "/leaves/subordinates", nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLeave(ctx context.Context, req leave.Create) (*leave.Request, error) {
	var out leave.Request
	if err := c.do(ctx, http.MethodPost, "/leaves", req, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLeave(ctx context.Context, id string, upd leave.Update) (*leave.Request, error) {
	var out leave.Request
	if err := c.do(ctx, http.MethodPut, "/leaves/"+url.PathEscape(id), upd, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RetractLeave(ctx context.Context, id string) (*leave.Request, error) {
	var out leave.Request
	if err := c.do(ctx, http.MethodPost, "/leaves/"+url.PathEscape(id)+"/retract", struct{}{}, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecideLeave submits a manager's decision on a pending request.
func (c *Client) DecideLeave(ctx context.Context, id string, d leave.Decision) (*leave.Request, error) {
	var out leave.Request
	if err := c.do(ctx, http.MethodPut, "/leaves/"+url.PathEscape(id)+"/decision", d, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workdays asks the backend for the working-day count between two ISO
// dates; the backend owns the holiday calendar this depends on.
func (c *Client) Workdays(ctx context.Context, startDate, endDate string) (float64, error) {
	q := url.Values{}
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)

	var out struct {
		Workdays float64 `json:"workdays"`
	}
	if err := c.do(ctx, http.MethodGet, "/leaves/workdays?"+q.Encode(), nil, &out, reqOpts{}); err != nil {
		return 0, err
	}
	return out.Workdays, nil
}
