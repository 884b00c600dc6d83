package api

import (
	"context"
	"fmt"
	"net/url"

	"stationctl/internal/schedule"
)

// envelope is the common wrapper on encoding endpoints; a populated error
// field takes precedence over the payload.
type envelope struct {
	Error string `json:"error,omitempty"`
}

func (e envelope) err(path string) error {
	if e.Error == "" {
		return nil
	}
	return fmt.Errorf("%s: backend error: %s", path, e.Error)
}

// EncodingRooms lists the rooms with scheduled talks.
func (c *Client) EncodingRooms(ctx context.Context) ([]string, error) {
	var resp struct {
		envelope
		Rooms []string `json:"rooms"`
	}
	if err := c.get(ctx, "/encoding/rooms", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("/encoding/rooms"); err != nil {
		return nil, err
	}
	return resp.Rooms, nil
}

// EncodingSchedule lists the talks for one room, keyed by schedule id.
func (c *Client) EncodingSchedule(ctx context.Context, room string) (map[string]schedule.Talk, error) {
	path := "/encoding/schedule/" + url.PathEscape(room)
	var resp struct {
		envelope
		Talks map[string]schedule.Talk `json:"talks"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(path); err != nil {
		return nil, err
	}
	return resp.Talks, nil
}

// EncodingFormats lists the default output formats.
func (c *Client) EncodingFormats(ctx context.Context) ([]schedule.Format, error) {
	var resp struct {
		envelope
		Formats []schedule.Format `json:"formats"`
	}
	if err := c.get(ctx, "/encoding/formats", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("/encoding/formats"); err != nil {
		return nil, err
	}
	return resp.Formats, nil
}

// EncodingJobs lists the queued encode jobs.
func (c *Client) EncodingJobs(ctx context.Context) ([]schedule.Job, error) {
	var resp struct {
		envelope
		Queue []schedule.Job `json:"queue"`
	}
	if err := c.get(ctx, "/encoding/jobs", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("/encoding/jobs"); err != nil {
		return nil, err
	}
	return resp.Queue, nil
}

// EncodingInProgress lists the active and reserved jobs.
func (c *Client) EncodingInProgress(ctx context.Context) (schedule.InProgress, error) {
	var resp struct {
		envelope
		Status schedule.InProgress `json:"status"`
	}
	if err := c.get(ctx, "/encoding/in-progress", &resp); err != nil {
		return schedule.InProgress{}, err
	}
	if err := resp.err("/encoding/in-progress"); err != nil {
		return schedule.InProgress{}, err
	}
	return resp.Status, nil
}

// EncodingOutputStatus lists the per-job output state.
func (c *Client) EncodingOutputStatus(ctx context.Context) ([]schedule.OutputEntry, error) {
	var resp struct {
		envelope
		Status []schedule.OutputEntry `json:"status"`
	}
	if err := c.get(ctx, "/encoding/output-status", &resp); err != nil {
		return nil, err
	}
	if err := resp.err("/encoding/output-status"); err != nil {
		return nil, err
	}
	return resp.Status, nil
}

// SubmitEncode posts a composed encode job and returns the backend's result
// text.
func (c *Client) SubmitEncode(ctx context.Context, job schedule.Job) (string, error) {
	var resp struct {
		envelope
		Result string `json:"result"`
	}
	if err := c.post(ctx, "/encoding/submit", job, &resp); err != nil {
		return "", err
	}
	if err := resp.err("/encoding/submit"); err != nil {
		return "", err
	}
	return resp.Result, nil
}

type resubmitRequest struct {
	Formats []schedule.Format `json:"formats"`
}

// ResubmitEncode reposts an existing job id with the given format list.
func (c *Client) ResubmitEncode(ctx context.Context, id string, formats []schedule.Format) ([]schedule.Alert, error) {
	if id == "" {
		return nil, fmt.Errorf("job id required")
	}
	path := "/encoding/resubmit/" + url.PathEscape(id)
	var resp struct {
		envelope
		Alerts []schedule.Alert `json:"alerts"`
	}
	if err := c.post(ctx, path, resubmitRequest{Formats: formats}, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(path); err != nil {
		return resp.Alerts, err
	}
	return resp.Alerts, nil
}
