package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ternarybob/vantage/internal/models"
	"github.com/ternarybob/vantage/internal/storage/badger"
)

// snapshotRef identifies what a result is, for the archive.
type snapshotRef struct {
	function string
	symbol   string
}

// emit saves the result when --save is set, then prints it in the
// configured format.
func emit(cmd *cobra.Command, result interface{}, ref snapshotRef, markdown func() string) error {
	if saveFlag {
		if err := saveSnapshot(cmd.Context(), result, ref); err != nil {
			return err
		}
	}
	return write(cmd.OutOrStdout(), config.Output.Format, result, markdown)
}

// write renders result as json, yaml or markdown text.
func write(w io.Writer, format string, result interface{}, markdown func() string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprint(w, markdown())
		return err
	}
}

func saveSnapshot(ctx context.Context, result interface{}, ref snapshotRef) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	storage, err := badger.NewSnapshotStorage(logger, &config.Storage.Badger)
	if err != nil {
		return err
	}
	defer storage.Close()

	snapshot := &models.Snapshot{
		Function: ref.function,
		Symbol:   ref.symbol,
		Payload:  payload,
	}
	if err := storage.Save(ctx, snapshot); err != nil {
		return err
	}

	logger.Info().
		Str("id", snapshot.ID).
		Str("function", snapshot.Function).
		Str("symbol", snapshot.Symbol).
		Msg("Snapshot saved")
	return nil
}
