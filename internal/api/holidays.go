package api

import (
	"context"
	"net/http"
	"net/url"

	"leavectl/internal/domain/holiday"
)

func (c *Client) Holidays(ctx context.Context) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	if err := c.do(ctx, http.MethodGet, "/publicholidays", nil, &out, reqOpts{}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateHoliday(ctx context.Context, h holiday.Holiday) (*holiday.Holiday, error) {
	var out holiday.Holiday
	if err := c.do(ctx, http.MethodPost, "/publicholidays", h, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateHoliday(ctx context.Context, h holiday.Holiday) (*holiday.Holiday, error) {
	var out holiday.Holiday
	if err := c.do(ctx, http.MethodPut, "/publicholidays/"+url.PathEscape(h.ID), h, &out, reqOpts{idempotent: true}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteHoliday(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/publicholidays/"+url.PathEscape(id), nil, nil, reqOpts{idempotent: true})
}
