package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"stationctl/internal/station"
)

// ListStations fetches the full station collection.
func (c *Client) ListStations(ctx context.Context) ([]station.Payload, error) {
	var payloads []station.Payload
	if err := c.get(ctx, "/api/stations", &payloads); err != nil {
		return nil, err
	}
	return payloads, nil
}

// CreateStation registers a new station with its initial settings.
func (c *Client) CreateStation(ctx context.Context, settings station.Settings) error {
	return c.post(ctx, "/api/station", settings, nil)
}

// DeleteStation removes a station by id. The station leaves the local view
// only when the push feed confirms the removal.
func (c *Client) DeleteStation(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("station id required")
	}
	return c.do(ctx, http.MethodDelete, "/api/station/"+url.PathEscape(id), nil, nil)
}

type partialUpdate struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// UpdateStationField patches exactly one named field path on one station.
func (c *Client) UpdateStationField(ctx context.Context, id, key string, value any) error {
	if id == "" {
		return fmt.Errorf("station id required")
	}
	body := partialUpdate{Key: key, Value: value}
	return c.post(ctx, "/api/stations/"+url.PathEscape(id)+"/partial", body, nil)
}

// StationAction issues a command against a station, one of its devices, or
// its manager process.
func (c *Client) StationAction(ctx context.Context, req station.ActionRequest) error {
	if req.StationID == "" {
		return fmt.Errorf("station id required")
	}
	return c.post(ctx, "/api/station/"+url.PathEscape(req.StationID)+"/action", req, nil)
}
