package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListNotificationsParams filters and pages the notification listing
type ListNotificationsParams struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

// Notifications lists the current user's notifications
func (c *Client) Notifications(ctx context.Context, params ListNotificationsParams) (*Page[Notification], error) {
	values := url.Values{}
	if params.Page > 0 {
		values.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.UnreadOnly {
		values.Set("unreadOnly", "true")
	}

	resp, err := c.doRequest(ctx, http.MethodGet, "/notifications"+listQuery(values), nil)
	if err != nil {
		return nil, err
	}

	return parsePage[Notification](resp)
}

// UnreadCount returns the number of unread notifications
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notifications/unread-count", nil)
	if err != nil {
		return 0, err
	}

	var payload struct {
		Count int `json:"count"`
	}
	if err := parseResponse(resp, &payload); err != nil {
		return 0, err
	}

	return payload.Count, nil
}

// MarkRead marks one notification as read
func (c *Client) MarkRead(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodPatch, "/notifications/"+id+"/read", nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// MarkAllRead marks every notification as read
func (c *Client) MarkAllRead(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/notifications/mark-all-read", nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// DeleteNotification removes one notification
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/notifications/"+id, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// ClearRead removes every notification already marked read
func (c *Client) ClearRead(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/notifications/clear-read", nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
