package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"campaign-sync/core/config"
	"campaign-sync/core/database"
	"campaign-sync/core/logger"
	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
	"campaign-sync/core/storage"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/syncplan"
	"campaign-sync/feature/world"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the setup command
	createLocally bool
	dryRunSetup   bool
	yesConfirm    bool
)

// setupCmd runs the guided first-time sync: reconcile, report, confirm,
// execute.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Guided first-time sync between the world store and the campaign",
	Long: `Reconciles the world store against the remote campaign, reports the
matches and the planned work, and executes the plan after confirmation.

Matched records are linked, local-only records are exported, and remote-only
records are imported as lightweight references unless --create-locally is
given, in which case they become full local records.

Examples:
  # Report only (dry-run)
  campaign-sync setup --dry-run

  # Run with interactive confirmation
  campaign-sync setup

  # Import remote-only entities as full local records, non-interactive
  campaign-sync setup --create-locally --yes`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&createLocally, "create-locally", false, "Create full local records for remote-only entities")
	setupCmd.Flags().BoolVar(&dryRunSetup, "dry-run", false, "Report only, execute nothing")
	setupCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm execution (non-interactive)")

	RootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting guided sync setup", zap.String("campaign", cfg.Remote.CampaignID))

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect world store database: %w", err)
	}
	store := world.NewStore(db, l)
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate world store schema: %w", err)
	}

	client, err := remote.NewClient(cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to create remote client: %w", err)
	}

	var mirror syncplan.Mirror
	if cfg.Storage.Enabled {
		storageClient, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		m := storage.NewMirror(storageClient, cfg.Storage.Bucket)
		if err := m.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to prepare image bucket: %w", err)
		}
		mirror = m
	}

	indexer := linkgraph.New(store, l)
	if err := indexer.Rebuild(ctx); err != nil {
		return fmt.Errorf("failed to build link graph: %w", err)
	}

	executor := syncplan.NewExecutor(syncplan.ExecutorConfig{
		Store:       store,
		Client:      client,
		Mirror:      mirror,
		Logger:      l,
		CampaignID:  cfg.Remote.CampaignID,
		RecapFolder: cfg.Sync.RecapFolder,
	})
	service := syncplan.NewService(store, client, indexer, executor, l)

	// Step 1: Reconcile and report
	preview, err := service.Preview(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile stores: %w", err)
	}
	printReconciliation(l, preview)

	if dryRunSetup {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 2: Confirm
	if !confirmAction() {
		l.Warn("Setup cancelled by user. No changes were made.")
		return nil
	}

	// Step 3: Execute
	choices := syncplan.Choices{CreateLocally: map[string]bool{}}
	if createLocally {
		for _, category := range reconcile.Categories {
			for _, row := range preview.Result.Category(category).Remote {
				if row.Selected && row.Match == "" {
					choices.CreateLocally[row.ID] = true
				}
			}
		}
	}

	resp, err := service.Run(ctx, syncplan.RunRequest{
		Result:  preview.Result,
		Choices: choices,
	})
	if err != nil {
		return fmt.Errorf("failed to run sync plan: %w", err)
	}

	l.Info("Setup complete",
		zap.Int("processed", resp.Report.Processed),
		zap.Int("total", resp.Report.Total),
		zap.Int("skipped", resp.Report.Skipped),
		zap.Int("failed", len(resp.Report.Failures)),
		zap.Int("linksCreated", resp.Links.Created),
		zap.Int("linksRemoved", resp.Links.Removed),
	)
	for _, failure := range resp.Report.Failures {
		l.Warn("Failed job",
			zap.String("op", string(failure.Op)),
			zap.String("name", failure.Name),
			zap.String("error", failure.Error),
		)
	}
	return nil
}

// printReconciliation logs the per-category match summary.
func printReconciliation(l *zap.Logger, preview *syncplan.PreviewResponse) {
	for _, category := range reconcile.Categories {
		pair := preview.Result.Category(category)
		matched, remoteOnly, localOnly := 0, 0, 0
		for _, row := range pair.Remote {
			if row.Match != "" {
				matched++
			} else {
				remoteOnly++
			}
		}
		for _, row := range pair.Local {
			if row.Match == "" {
				localOnly++
			}
		}
		l.Info("Reconciliation summary",
			zap.String("category", string(category)),
			zap.Int("matched", matched),
			zap.Int("remoteOnly", remoteOnly),
			zap.Int("localOnly", localOnly),
		)
	}
	l.Info("Sessions available for recap import", zap.Int("sessions", preview.Sessions))
}

// confirmAction prompts the user for confirmation or uses the --yes flag.
func confirmAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to run the sync plan: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
