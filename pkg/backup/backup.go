// Package backup is a thin CRUD executor over the server's cross-collection
// backup endpoints, per spec.md §6 (`POST|GET|DELETE /v1/backups/{backend}[/{id}[/restore]]`).
// The single-collection include-list shortcut exposed off a collection
// handle lives in pkg/collection and delegates its HTTP calls directly;
// this package is the full multi-collection DSL.
package backup

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/transport"
	"github.com/cuemby/vecta-go/pkg/verrors"
)

// Status is a backup or restore job's lifecycle state.
type Status string

const (
	StatusStarted      Status = "STARTED"
	StatusTransferring Status = "TRANSFERRING"
	StatusSuccess      Status = "SUCCESS"
	StatusFailed       Status = "FAILED"
	StatusCancelled    Status = "CANCELLED"
)

// Job describes a backup or restore job's current state.
type Job struct {
	ID      string   `json:"id"`
	Backend string   `json:"backend"`
	Status  Status   `json:"status"`
	Error   string   `json:"error,omitempty"`
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// Client wraps the HTTP control plane for backup/restore CRUD.
type Client struct {
	http *transport.HTTP
}

// New builds a backup client.
func New(http *transport.HTTP) *Client {
	return &Client{http: http}
}

// Create starts a backup on the named backend, scoped by an optional
// include/exclude collection list (both empty ⇒ every collection).
func (c *Client) Create(ctx context.Context, backend, backupID string, include, exclude []string) error {
	body := map[string]any{"id": backupID}
	if len(include) > 0 {
		body["include"] = include
	}
	if len(exclude) > 0 {
		body["exclude"] = exclude
	}
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/backups/%s", backend),
		Body:       body,
		OKStatus:   []int{200},
		ErrorLabel: "create backup",
	})
	return err
}

// Status fetches a backup job's current state, surfacing a terminal
// failed/cancelled state as a typed error per spec.md §3's
// BackupFailedError/BackupCanceledError.
func (c *Client) Status(ctx context.Context, backend, backupID string) (Job, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/backups/%s/%s", backend, backupID),
		OKStatus:   []int{200},
		ErrorLabel: "get backup status",
	})
	if err != nil {
		return Job{}, err
	}
	var job Job
	if err := resp.JSON(&job); err != nil {
		return Job{}, fmt.Errorf("backup: decode job: %w", err)
	}
	switch job.Status {
	case StatusFailed:
		return job, &verrors.BackupFailedError{BackupID: backupID, Reason: job.Error}
	case StatusCancelled:
		return job, &verrors.BackupCanceledError{BackupID: backupID}
	}
	return job, nil
}

// Restore starts a restore of a backup onto the named backend, scoped by
// an optional include/exclude collection list.
func (c *Client) Restore(ctx context.Context, backend, backupID string, include, exclude []string) error {
	body := map[string]any{}
	if len(include) > 0 {
		body["include"] = include
	}
	if len(exclude) > 0 {
		body["exclude"] = exclude
	}
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "POST",
		Path:       fmt.Sprintf("/backups/%s/%s/restore", backend, backupID),
		Body:       body,
		OKStatus:   []int{200},
		ErrorLabel: "restore backup",
	})
	return err
}

// RestoreStatus fetches a restore job's current state.
func (c *Client) RestoreStatus(ctx context.Context, backend, backupID string) (Job, error) {
	resp, err := c.http.Send(ctx, transport.Request{
		Method:     "GET",
		Path:       fmt.Sprintf("/backups/%s/%s/restore", backend, backupID),
		OKStatus:   []int{200},
		ErrorLabel: "get restore status",
	})
	if err != nil {
		return Job{}, err
	}
	var job Job
	if err := resp.JSON(&job); err != nil {
		return Job{}, fmt.Errorf("backup: decode restore job: %w", err)
	}
	return job, nil
}

// Delete removes a completed backup's record from the backend.
func (c *Client) Delete(ctx context.Context, backend, backupID string) error {
	_, err := c.http.Send(ctx, transport.Request{
		Method:     "DELETE",
		Path:       fmt.Sprintf("/backups/%s/%s", backend, backupID),
		OKStatus:   []int{204},
		ErrorLabel: "delete backup",
	})
	return err
}
