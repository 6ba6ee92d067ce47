package api

import (
	"context"
	"fmt"

	"myhair/internal/model"

	"golang.org/x/sync/errgroup"
)

// Workspace is everything the stylist dashboard shows at once.
type Workspace struct {
	Detail       *model.StylistDetail
	Reservations []model.Reservation
	Summary      *model.Dashboard
}

// LoadWorkspace fetches the dashboard pieces for stylist id concurrently.
// The first failure cancels the others.
func (c *Client) LoadWorkspace(ctx context.Context, id int) (*Workspace, error) {
	var ws Workspace
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d, err := c.Stylist(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		ws.Detail = d
		return nil
	})
	g.Go(func() error {
		r, err := c.Reservations(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		ws.Reservations = r
		return nil
	})
	g.Go(func() error {
		s, err := c.Dashboard(gctx)
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}
		ws.Summary = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ws, nil
}
