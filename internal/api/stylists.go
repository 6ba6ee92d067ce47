package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"myhair/internal/model"
)

// StylistQuery narrows /api/stylists server side. Empty fields are omitted.
type StylistQuery struct {
	City     string
	Category string
	SortBy   string
}

func (q StylistQuery) encode() string {
	v := url.Values{}
	if q.City != "" {
		v.Set("city", q.City)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Stylists lists active stylists.
func (c *Client) Stylists(ctx context.Context, q StylistQuery) ([]model.Stylist, error) {
	var out []model.Stylist
	if err := c.getJSON(ctx, "/api/stylists"+q.encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stylist fetches one stylist's full profile.
func (c *Client) Stylist(ctx context.Context, id int) (*model.StylistDetail, error) {
	var out model.StylistDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/api/stylists/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWaiting sets the stylist's queue length. Only the stylist may do so.
func (c *Client) UpdateWaiting(ctx context.Context, id, waiting int) error {
	payload := map[string]int{"waiting_count": waiting}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/stylists/%d", id), payload, nil)
}

// Comment leaves a client comment on a stylist.
func (c *Client) Comment(ctx context.Context, id int, text string) error {
	payload := map[string]string{"comment": text}
	return c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/stylists/%d/comment", id), payload, nil)
}

// Subscribe follows (on=true) or unfollows a stylist.
func (c *Client) Subscribe(ctx context.Context, id int, on bool) error {
	method := http.MethodPost
	if !on {
		method = http.MethodDelete
	}
	return c.sendJSON(ctx, method, fmt.Sprintf("/api/coiffeur/%d/subscribe", id), nil, nil)
}

// Locations lists the map pins of every located stylist.
func (c *Client) Locations(ctx context.Context) ([]model.Location, error) {
	var out []model.Location
	if err := c.getJSON(ctx, "/api/coiffeurs/locations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Nearby lists stylists within the backend's radius of (lat, lon).
func (c *Client) Nearby(ctx context.Context, lat, lon float64) ([]model.NearbyStylist, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	var out []model.NearbyStylist
	if err := c.getJSON(ctx, "/api/coiffeurs/nearby?"+v.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createdResponse struct {
	ID int `json:"id"`
}

// Reserve books a slot with stylist id and returns the reservation id.
func (c *Client) Reserve(ctx context.Context, id int, req model.ReservationRequest) (int, error) {
	var out createdResponse
	if err := c.sendJSON(ctx, http.MethodPost, fmt.Sprintf("/api/reserve/%d", id), req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// RequestMobile broadcasts a home-service request to mobile stylists.
func (c *Client) RequestMobile(ctx context.Context, req model.MobileRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/deplacement/request/broadcast", req, nil)
}
