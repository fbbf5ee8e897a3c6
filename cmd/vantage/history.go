package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/vantage/internal/interfaces"
	"github.com/ternarybob/vantage/internal/models"
	"github.com/ternarybob/vantage/internal/report"
	"github.com/ternarybob/vantage/internal/storage/badger"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history SYMBOL",
	Short: "List snapshots saved with --save for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := badger.NewSnapshotStorage(logger, &config.Storage.Badger)
		if err != nil {
			return err
		}
		defer storage.Close()

		symbol := strings.ToUpper(args[0])
		snapshots, err := storage.List(cmd.Context(), symbol, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list snapshots: %w", err)
		}

		return write(cmd.OutOrStdout(), config.Output.Format, snapshots, func() string {
			return report.Snapshots(symbol, snapshots)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show SNAPSHOT_ID",
	Short: "Print a saved snapshot and its payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := badger.NewSnapshotStorage(logger, &config.Storage.Badger)
		if err != nil {
			return err
		}
		defer storage.Close()

		snapshot, err := storage.Get(cmd.Context(), args[0])
		if errors.Is(err, interfaces.ErrSnapshotNotFound) {
			return fmt.Errorf("snapshot %s not found", args[0])
		}
		if err != nil {
			return err
		}
		return printSnapshot(cmd.OutOrStdout(), config.Output.Format, snapshot)
	},
}

// printSnapshot writes the stored payload for json and yaml, and the
// snapshot with its payload for text.
func printSnapshot(w io.Writer, format string, snapshot *models.Snapshot) error {
	var payload interface{}
	if err := json.Unmarshal(snapshot.Payload, &payload); err != nil {
		return fmt.Errorf("snapshot %s has an unreadable payload: %w", snapshot.ID, err)
	}
	return write(w, format, payload, func() string {
		return report.Snapshot(snapshot)
	})
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of snapshots to list")
}
