package cmd

import (
	"context"
	"errors"
	"fmt"

	"campaign-sync/core/config"
	"campaign-sync/core/database"
	"campaign-sync/core/logger"
	"campaign-sync/core/remote"
	"campaign-sync/feature/extract"
	"campaign-sync/feature/fingerprint"
	"campaign-sync/feature/mapping"
	"campaign-sync/feature/world"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	dryRunImport   bool
	minScoreImport float64
	fastHashImport bool
)

// importCmd runs the opportunistic one-directional sync: extract, classify,
// fingerprint, and push only what changed.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Push changed world records to the campaign service",
	Long: `Extracts every world record, classifies it with the configured mapping
preset, and pushes it to the campaign service. Records whose content
fingerprint matches the stored one are skipped, so repeated runs over an
unchanged world do no remote work.

Examples:
  # Push everything that changed
  campaign-sync import

  # Report what would be pushed
  campaign-sync import --dry-run

  # Only push confident classifications
  campaign-sync import --min-score 0.6`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Report only, push nothing")
	importCmd.Flags().Float64Var(&minScoreImport, "min-score", 0.4, "Minimum mapping confidence to push a record")
	importCmd.Flags().BoolVar(&fastHashImport, "fast-hash", false, "Use the fast non-cryptographic fingerprint hasher")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

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

	preset := mapping.Lookup(cfg.Sync.Preset)
	l.Info("Starting opportunistic import",
		zap.String("campaign", cfg.Remote.CampaignID),
		zap.String("preset", preset.Name))

	var opts []fingerprint.Option
	if fastHashImport {
		opts = append(opts, fingerprint.WithFNV())
	}
	engine := fingerprint.New(opts...)

	entities, err := extract.New(store, l).Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract world records: %w", err)
	}

	var pushed, skipped, failed int
	for i := range entities {
		entity := &entities[i]
		outcome, err := pushEntity(ctx, store, client, engine, preset, entity, cfg.Remote.CampaignID)
		switch {
		case err != nil:
			failed++
			l.Error("Failed to push record",
				zap.String("name", entity.Name),
				zap.String("kind", entity.Kind),
				zap.Error(err))
		case outcome == "":
			skipped++
		default:
			pushed++
			l.Info("Pushed record",
				zap.String("name", entity.Name),
				zap.String("outcome", outcome))
		}
	}

	l.Info("Import finished",
		zap.Int("pushed", pushed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed))
	return nil
}

// pushEntity syncs one entity. It returns the outcome ("created" or
// "updated") or the empty string when the entity was skipped.
func pushEntity(ctx context.Context, store *world.Store, client remote.Client, engine *fingerprint.Engine, preset *mapping.Preset, entity *extract.GenericEntity, campaignID string) (string, error) {
	record, err := store.Get(ctx, entity.SourceID)
	if err != nil {
		return "", err
	}

	digest, err := engine.Compute(entity)
	if err != nil {
		return "", err
	}
	if record.Fingerprint == digest {
		return "", nil
	}

	proposal := mapping.Map(entity, preset)
	if proposal.Score < minScoreImport {
		return "", nil
	}
	// Notes stay local; the campaign service has no note resource.
	if proposal.TargetType == mapping.TargetNote {
		return "", nil
	}

	if dryRunImport {
		return "", nil
	}

	outcome, remoteID, err := writeRemote(ctx, client, record.RemoteID, proposal)
	if err != nil {
		if errors.Is(err, remote.ErrDescriptionTooLong) {
			return "", fmt.Errorf("description exceeds the service limit: %w", err)
		}
		return "", err
	}

	if outcome == "created" {
		if err := store.SetCrossReference(ctx, record.ID, remoteID, campaignID); err != nil {
			return "", err
		}
	}
	if err := store.SetSheetType(ctx, record.ID, proposal.TargetType); err != nil {
		return "", err
	}
	if err := store.SetFingerprint(ctx, record.ID, digest); err != nil {
		return "", err
	}
	return outcome, nil
}

// writeRemote creates or updates the remote record for a proposal.
func writeRemote(ctx context.Context, client remote.Client, remoteID string, proposal mapping.Proposal) (outcome, id string, err error) {
	payload := proposal.Payload

	switch proposal.TargetType {
	case mapping.TargetCharacter:
		c := remote.Character{
			Name:        payload["name"],
			Type:        characterType(proposal.Labels),
			Description: payload["description"],
			ImageURL:    payload["image_url"],
		}
		if remoteID != "" {
			return "updated", remoteID, client.UpdateCharacter(ctx, remoteID, c)
		}
		created, err := client.CreateCharacter(ctx, c)
		return "created", created.ID, err

	case mapping.TargetItem:
		i := remote.Item{
			Name:        payload["name"],
			Description: payload["description"],
			ImageURL:    payload["image_url"],
		}
		if remoteID != "" {
			return "updated", remoteID, client.UpdateItem(ctx, remoteID, i)
		}
		created, err := client.CreateItem(ctx, i)
		return "created", created.ID, err

	case mapping.TargetLocation:
		l := remote.Location{
			Name:        payload["name"],
			Description: payload["description"],
			ImageURL:    payload["image_url"],
		}
		if remoteID != "" {
			return "updated", remoteID, client.UpdateLocation(ctx, remoteID, l)
		}
		created, err := client.CreateLocation(ctx, l)
		return "created", created.ID, err

	case mapping.TargetFaction:
		f := remote.Faction{
			Name:        payload["name"],
			Description: payload["description"],
			ImageURL:    payload["image_url"],
		}
		if remoteID != "" {
			return "updated", remoteID, client.UpdateFaction(ctx, remoteID, f)
		}
		created, err := client.CreateFaction(ctx, f)
		return "created", created.ID, err
	}

	return "", "", fmt.Errorf("target type %q is not exportable", proposal.TargetType)
}

func characterType(labels []string) string {
	for _, label := range labels {
		if label == "PC" {
			return "PC"
		}
	}
	return "NPC"
}
