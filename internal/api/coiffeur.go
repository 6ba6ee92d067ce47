package api

import (
	"context"
	"fmt"
	"net/http"

	"myhair/internal/model"
)

// Dashboard returns the role-dependent summary for the session user.
func (c *Client) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	var out model.Dashboard
	if err := c.getJSON(ctx, "/api/dashboard", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reservations lists the bookings of stylist id, oldest first.
func (c *Client) Reservations(ctx context.Context, id int) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := c.getJSON(ctx, fmt.Sprintf("/api/coiffeur/%d/reservations", id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetReservationStatus moves a booking to status.
func (c *Client) SetReservationStatus(ctx context.Context, id int, status string) error {
	if !model.ValidReservationStatus(status) {
		return fmt.Errorf("unknown reservation status %q", status)
	}
	payload := map[string]string{"status": status}
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/api/reservations/%d/status", id), payload, nil)
}

// AddMenuItem adds an entry to the session stylist's menu and returns its id.
func (c *Client) AddMenuItem(ctx context.Context, item model.NewMenuItem) (int, error) {
	var out createdResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/coiffeur/menu", item, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id int) error {
	return c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/coiffeur/menu/%d", id), nil, nil)
}

// UpdateLocation pins the session stylist on the map.
func (c *Client) UpdateLocation(ctx context.Context, lat, lng float64) error {
	payload := map[string]float64{"latitude": lat, "longitude": lng}
	return c.sendJSON(ctx, http.MethodPost, "/api/coiffeur/location", payload, nil)
}

// Publish posts to the session stylist's feed with optional local images.
func (c *Client) Publish(ctx context.Context, pub model.NewPublication) (int, error) {
	mp := newMultipart()
	mp.field("text", pub.Text)
	for _, img := range pub.Images {
		mp.file("pub_images", img)
	}
	body, contentType, err := mp.finish()
	if err != nil {
		return 0, err
	}
	var out createdResponse
	if err := c.do(ctx, http.MethodPost, "/api/publications/with_images", body, contentType, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UploadAvatar replaces the session stylist's profile picture and returns
// the new image URL.
func (c *Client) UploadAvatar(ctx context.Context, path string) (string, error) {
	mp := newMultipart()
	mp.file("avatar_file", path)
	body, contentType, err := mp.finish()
	if err != nil {
		return "", err
	}
	var out struct {
		ImageURL string `json:"image_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/profile/upload_avatar", body, contentType, &out); err != nil {
		return "", err
	}
	return out.ImageURL, nil
}
