package main

import (
	"context"
	"fmt"
	"net/url"

	"myhair/internal/api"
	"myhair/internal/cache"
	"myhair/internal/config"
	"myhair/internal/session"
	"myhair/internal/telemetry"
)

// backend bundles what every command needs to talk to the server with the
// persisted session.
type backend struct {
	client *api.Client
	store  *session.Store
	kv     cache.Store
	base   *url.URL
}

// newBackend builds the client, cache and session store from the current
// configuration. Tests swap it to point at an in-process server.
var newBackend = func(ctx context.Context) (*backend, error) {
	cfg := config.Current()

	base, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", cfg.APIURL, err)
	}

	client, err := api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.Timeout),
		api.WithSessionPath(cfg.SessionPath),
		api.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	if err != nil {
		return nil, err
	}

	kv, err := cache.Open(cfg.CachePath, cfg.Ephemeral)
	if err != nil {
		return nil, err
	}
	if err := cache.LoadCookies(kv, client.HTTPClient.Jar, base); err != nil {
		telemetry.LogDebug("Ignoring saved cookies", "error", err)
	}

	store := session.NewStore(client, cache.NewProfileCache(kv))
	return &backend{client: client, store: store, kv: kv, base: base}, nil
}

// Close persists the session cookies and releases the cache.
func (b *backend) Close() error {
	if err := cache.SaveCookies(b.kv, b.client.HTTPClient.Jar, b.base); err != nil {
		telemetry.LogError("Failed to save cookies", err)
	}
	return b.kv.Close()
}
