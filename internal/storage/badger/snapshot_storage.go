package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/vantage/internal/common"
	"github.com/ternarybob/vantage/internal/interfaces"
	"github.com/ternarybob/vantage/internal/models"
)

// SnapshotStorage implements the SnapshotStorage interface for Badger
type SnapshotStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSnapshotStorage opens the archive at config.Path. A nil logger falls
// back to the global one.
func NewSnapshotStorage(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.SnapshotStorage, error) {
	if logger == nil {
		logger = common.GetLogger()
	}
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}
	return &SnapshotStorage{
		db:     db,
		logger: logger,
	}, nil
}

// normalizeSymbol upper-cases symbols so lookups are case-insensitive
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Save stores a snapshot, assigning an ID and fetch time when missing.
func (s *SnapshotStorage) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}
	if snapshot.ID == "" {
		snapshot.ID = common.NewSnapshotID()
	}
	if snapshot.FetchedAt.IsZero() {
		snapshot.FetchedAt = time.Now()
	}
	snapshot.Symbol = normalizeSymbol(snapshot.Symbol)

	if err := s.db.Store().Upsert(snapshot.ID, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Debug().
		Str("id", snapshot.ID).
		Str("function", snapshot.Function).
		Str("symbol", snapshot.Symbol).
		Int("bytes", len(snapshot.Payload)).
		Msg("Snapshot saved")

	return nil
}

// Get retrieves a snapshot by ID
func (s *SnapshotStorage) Get(ctx context.Context, id string) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := s.db.Store().Get(id, &snapshot)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return &snapshot, nil
}

// List returns the snapshots for symbol, newest first
func (s *SnapshotStorage) List(ctx context.Context, symbol string, limit int) ([]*models.Snapshot, error) {
	query := badgerhold.Where("Symbol").Eq(normalizeSymbol(symbol)).SortBy("FetchedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var snapshots []models.Snapshot
	if err := s.db.Store().Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	result := make([]*models.Snapshot, len(snapshots))
	for i := range snapshots {
		result[i] = &snapshots[i]
	}
	return result, nil
}

// Close closes the underlying database
func (s *SnapshotStorage) Close() error {
	return s.db.Close()
}
