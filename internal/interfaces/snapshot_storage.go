package interfaces

import (
	"context"
	"errors"

	"github.com/ternarybob/vantage/internal/models"
)

// ErrSnapshotNotFound is returned when a snapshot ID does not exist.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStorage archives API results saved on request. It is never
// consulted by the API client.
type SnapshotStorage interface {
	Save(ctx context.Context, snapshot *models.Snapshot) error
	Get(ctx context.Context, id string) (*models.Snapshot, error)
	// List returns the snapshots for symbol, newest first. A limit of zero
	// returns all of them.
	List(ctx context.Context, symbol string, limit int) ([]*models.Snapshot, error)
	Close() error
}
