package api

import (
	"context"
	"fmt"

	"stationctl/internal/status"
)

// StatusSnapshot fetches the raw process-status snapshot for every station.
func (c *Client) StatusSnapshot(ctx context.Context) (status.Snapshot, error) {
	var snapshot status.Snapshot
	if err := c.get(ctx, "/status", &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

type restartRequest struct {
	ID string `json:"id"`
}

// RestartProcess asks the manager to restart one process by id.
func (c *Client) RestartProcess(ctx context.Context, procID string) error {
	if procID == "" {
		return fmt.Errorf("process id required")
	}
	return c.post(ctx, "/command/restart", restartRequest{ID: procID}, nil)
}
