package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"campaign-sync/core/config"
	"campaign-sync/core/database"
	"campaign-sync/core/loader"
	"campaign-sync/core/logger"
	"campaign-sync/core/middleware/auth"
	"campaign-sync/core/middleware/rayid"
	"campaign-sync/core/remote"
	"campaign-sync/core/storage"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/syncplan"
	"campaign-sync/feature/world"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the campaign sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect World Store
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect world store database", zap.Error(err))
		}
		store := world.NewStore(db, logg)
		if err := store.Migrate(); err != nil {
			logg.Fatal("Failed to migrate world store schema", zap.Error(err))
		}

		// 4. Remote Campaign Service Client
		client, err := remote.NewClient(cfg.Remote)
		if err != nil {
			logg.Fatal("Failed to create remote client", zap.Error(err))
		}

		// 5. Optional Image Mirror
		var mirror syncplan.Mirror
		if cfg.Storage.Enabled {
			storageClient, err := storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			m := storage.NewMirror(storageClient, cfg.Storage.Bucket)
			if err := m.EnsureBucket(ctx); err != nil {
				logg.Fatal("Failed to prepare image bucket", zap.Error(err))
			}
			mirror = m
			logg.Info("Image mirroring enabled", zap.String("bucket", cfg.Storage.Bucket))
		}

		// 6. Link Graph
		indexer := linkgraph.New(store, logg)
		if err := indexer.Rebuild(ctx); err != nil {
			logg.Fatal("Failed to build link graph", zap.Error(err))
		}

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 8. Feature Loader
		mgr := loader.NewManager()
		mgr.Register(syncplan.NewFeature(syncplan.FeatureConfig{
			Store:       store,
			Client:      client,
			Indexer:     indexer,
			Mirror:      mirror,
			Logger:      logg,
			CampaignID:  cfg.Remote.CampaignID,
			RecapFolder: cfg.Sync.RecapFolder,
		}))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging via Zap + RayID
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (protect the whole API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
