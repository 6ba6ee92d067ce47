package ui

import (
	"context"

	"myhair/internal/api"
	"myhair/internal/model"
)

// API is the subset of the backend client the pages use.
type API interface {
	Stylists(ctx context.Context, q api.StylistQuery) ([]model.Stylist, error)
	Stylist(ctx context.Context, id int) (*model.StylistDetail, error)
	Nearby(ctx context.Context, lat, lon float64) ([]model.NearbyStylist, error)
	Locations(ctx context.Context) ([]model.Location, error)
	Subscribe(ctx context.Context, id int, on bool) error
	Comment(ctx context.Context, id int, text string) error
	Reserve(ctx context.Context, id int, req model.ReservationRequest) (int, error)
	RequestMobile(ctx context.Context, req model.MobileRequest) error
	SignupClient(ctx context.Context, form model.ClientSignup) (int, error)
	SignupCoiffeur(ctx context.Context, form model.CoiffeurSignup) (int, error)
	LoadWorkspace(ctx context.Context, id int) (*api.Workspace, error)
	UpdateWaiting(ctx context.Context, id, waiting int) error
	SetReservationStatus(ctx context.Context, id int, status string) error
	AddMenuItem(ctx context.Context, item model.NewMenuItem) (int, error)
	DeleteMenuItem(ctx context.Context, id int) error
	UpdateLocation(ctx context.Context, lat, lng float64) error
	Publish(ctx context.Context, pub model.NewPublication) (int, error)
	UploadAvatar(ctx context.Context, path string) (string, error)
}

var _ API = (*api.Client)(nil)
