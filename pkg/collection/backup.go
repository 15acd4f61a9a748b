package collection

import (
	"context"
	"fmt"

	"github.com/cuemby/vecta-go/pkg/transport"
)

// Backup is the single-collection include-list shortcut over the
// cluster-wide backup endpoints, per spec.md §4.10/§6: a convenience
// that always scopes the backup's include-list to this collection
// alone, rather than exposing the full cross-collection backup DSL
// (that lives in pkg/backup).
type Backup struct {
	c *Collection
}

// Backup returns the single-collection backup handle.
func (c *Collection) Backup() Backup {
	return Backup{c: c}
}

// Create kicks off a backup of this collection only, on the named
// backend (e.g. "filesystem", "s3", "gcs").
func (b Backup) Create(ctx context.Context, backend, backupID string) error {
	_, err := b.c.http.Send(ctx, transport.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/backups/%s", backend),
		Body: map[string]any{
			"id":      backupID,
			"include": []string{b.c.name},
		},
		OKStatus:   []int{200},
		ErrorLabel: "create collection backup",
	})
	return err
}

// Restore restores this collection from an existing backup.
func (b Backup) Restore(ctx context.Context, backend, backupID string) error {
	_, err := b.c.http.Send(ctx, transport.Request{
		Method: "POST",
		Path:   fmt.Sprintf("/backups/%s/%s/restore", backend, backupID),
		Body: map[string]any{
			"include": []string{b.c.name},
		},
		OKStatus:   []int{200},
		ErrorLabel: "restore collection backup",
	})
	return err
}
