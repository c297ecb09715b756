package syncplan

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"campaign-sync/core/remote"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/world"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// FeatureConfig wires the sync feature.
type FeatureConfig struct {
	Store       *world.Store
	Client      remote.Client
	Indexer     *linkgraph.Indexer
	Mirror      Mirror
	Logger      *zap.Logger
	CampaignID  string
	RecapFolder string
}

// NewFeature creates the sync feature.
func NewFeature(cfg FeatureConfig) *Feature {
	executor := NewExecutor(ExecutorConfig{
		Store:       cfg.Store,
		Client:      cfg.Client,
		Mirror:      cfg.Mirror,
		Logger:      cfg.Logger,
		CampaignID:  cfg.CampaignID,
		RecapFolder: cfg.RecapFolder,
	})
	svc := NewService(cfg.Store, cfg.Client, cfg.Indexer, executor, cfg.Logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
