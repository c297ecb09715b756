package cmd

import (
	"context"
	"fmt"

	"campaign-sync/core/config"
	"campaign-sync/core/database"
	"campaign-sync/core/logger"
	"campaign-sync/feature/world"

	"github.com/spf13/cobra"
)

var yesConfirmReset bool

// resetCmd clears the engine's sync metadata so setup can run fresh.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear sync metadata on every world record",
	Long: `Clears the engine-owned metadata fields (cross-references, relationship
buckets, parent pointers, fingerprints) on every world record. Record
content is untouched; this is an idempotent reset, not a delete.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&yesConfirmReset, "yes", false, "Auto-confirm (non-interactive)")
	RootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !yesConfirmReset && !confirmAction() {
		l.Warn("Reset cancelled by user. No changes were made.")
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect world store database: %w", err)
	}
	store := world.NewStore(db, l)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate world store schema: %w", err)
	}

	if err := store.ResetSyncMetadata(ctx); err != nil {
		return fmt.Errorf("failed to reset sync metadata: %w", err)
	}
	return nil
}
