package badger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/vantage/internal/common"
	"github.com/ternarybob/vantage/internal/interfaces"
	"github.com/ternarybob/vantage/internal/models"
)

func newTestStorage(t *testing.T) interfaces.SnapshotStorage {
	t.Helper()
	config := &common.BadgerConfig{Path: filepath.Join(t.TempDir(), "snapshots")}
	storage, err := NewSnapshotStorage(arbor.NewLogger(), config)
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestSnapshotSaveAndGet(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	snapshot := &models.Snapshot{
		Function: "OVERVIEW",
		Symbol:   "ibm",
		Payload:  []byte(`{"Symbol":"IBM"}`),
	}
	require.NoError(t, storage.Save(ctx, snapshot))

	assert.NotEmpty(t, snapshot.ID)
	assert.Contains(t, snapshot.ID, "snap_")
	assert.False(t, snapshot.FetchedAt.IsZero())
	assert.Equal(t, "IBM", snapshot.Symbol)

	got, err := storage.Get(ctx, snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "OVERVIEW", got.Function)
	assert.Equal(t, "IBM", got.Symbol)
	assert.JSONEq(t, `{"Symbol":"IBM"}`, string(got.Payload))
}

func TestSnapshotGetMissing(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Get(context.Background(), "snap_missing")
	assert.ErrorIs(t, err, interfaces.ErrSnapshotNotFound)
}

func TestSnapshotListNewestFirst(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)

	for i, fn := range []string{"OVERVIEW", "EARNINGS", "TIME_SERIES_DAILY"} {
		require.NoError(t, storage.Save(ctx, &models.Snapshot{
			Function:  fn,
			Symbol:    "IBM",
			FetchedAt: base.Add(time.Duration(i) * time.Hour),
			Payload:   []byte(`{}`),
		}))
	}
	require.NoError(t, storage.Save(ctx, &models.Snapshot{
		Function:  "OVERVIEW",
		Symbol:    "MSFT",
		FetchedAt: base,
		Payload:   []byte(`{}`),
	}))

	all, err := storage.List(ctx, "ibm", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "TIME_SERIES_DAILY", all[0].Function)
	assert.Equal(t, "EARNINGS", all[1].Function)
	assert.Equal(t, "OVERVIEW", all[2].Function)

	limited, err := storage.List(ctx, "IBM", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := storage.List(ctx, "AAPL", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
