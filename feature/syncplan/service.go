package syncplan

import (
	"context"

	"go.uber.org/zap"

	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/world"
)

// Service drives the guided sync flow: preview the reconciliation, run a
// plan built from the (possibly user-edited) result, report progress, and
// reset the engine's metadata.
type Service struct {
	store    *world.Store
	client   remote.Client
	indexer  *linkgraph.Indexer
	executor *Executor
	logger   *zap.Logger
}

// NewService creates a sync service.
func NewService(store *world.Store, client remote.Client, indexer *linkgraph.Indexer, executor *Executor, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		client:   client,
		indexer:  indexer,
		executor: executor,
		logger:   logger,
	}
}

// PreviewResponse is the reconciliation offered for user review.
type PreviewResponse struct {
	Result   *reconcile.Result `json:"result"`
	Sessions int               `json:"sessions"`
}

// RunRequest carries a finalized reconciliation back to the engine. A nil
// Result means "run with a fresh reconciliation as previewed".
type RunRequest struct {
	Result  *reconcile.Result `json:"result"`
	Choices Choices           `json:"choices"`
}

// RunResponse is the outcome of one sync run.
type RunResponse struct {
	Report *Report         `json:"report"`
	Links  *LinkPushReport `json:"links"`
}

// Preview fetches both stores and reconciles them.
func (s *Service) Preview(ctx context.Context) (*PreviewResponse, error) {
	snapshot, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	remoteLists, localLists, err := s.candidateLists(ctx, snapshot)
	if err != nil {
		return nil, err
	}
	result := reconcile.Reconcile(remoteLists, localLists)
	return &PreviewResponse{Result: &result, Sessions: len(snapshot.Sessions)}, nil
}

// Run builds and executes a plan, then mirrors the link graph onto the
// remote campaign and rebuilds the local graph cache.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResponse, error) {
	snapshot, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := req.Result
	if result == nil {
		remoteLists, localLists, err := s.candidateLists(ctx, snapshot)
		if err != nil {
			return nil, err
		}
		fresh := reconcile.Reconcile(remoteLists, localLists)
		result = &fresh
	}

	plan := Build(result, snapshot, req.Choices)
	s.logger.Info("Executing sync plan", zap.Int("jobs", plan.Total()))

	report, err := s.executor.Execute(ctx, plan)
	if err != nil {
		return nil, err
	}

	if err := s.indexer.Rebuild(ctx); err != nil {
		return nil, err
	}
	links, err := PushLinks(ctx, s.client, s.store, s.indexer.Graph(), s.logger)
	if err != nil {
		return nil, err
	}

	return &RunResponse{Report: report, Links: links}, nil
}

// Progress returns the running (or last) plan's counters.
func (s *Service) Progress() (processed, total int) {
	return s.executor.Progress().Snapshot()
}

// Reset idempotently clears the engine's metadata fields on every record
// and rebuilds the now-empty graph. Record content is untouched.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.ResetSyncMetadata(ctx); err != nil {
		return err
	}
	return s.indexer.Rebuild(ctx)
}

func (s *Service) fetchSnapshot(ctx context.Context) (*Snapshot, error) {
	characters, err := s.client.ListCharacters(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.client.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.client.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	factions, err := s.client.ListFactions(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Characters: characters,
		Items:      items,
		Locations:  locations,
		Factions:   factions,
		Sessions:   sessions,
	}, nil
}

func (s *Service) candidateLists(ctx context.Context, snapshot *Snapshot) (remoteLists, localLists reconcile.Lists, err error) {
	for _, c := range snapshot.Characters {
		remoteLists.Characters = append(remoteLists.Characters, reconcile.Candidate{ID: c.ID, Name: c.Name, Type: c.Type})
	}
	for _, i := range snapshot.Items {
		remoteLists.Items = append(remoteLists.Items, reconcile.Candidate{ID: i.ID, Name: i.Name})
	}
	for _, l := range snapshot.Locations {
		remoteLists.Locations = append(remoteLists.Locations, reconcile.Candidate{ID: l.ID, Name: l.Name})
	}
	for _, f := range snapshot.Factions {
		remoteLists.Factions = append(remoteLists.Factions, reconcile.Candidate{ID: f.ID, Name: f.Name})
	}

	for _, spec := range []struct {
		kind   string
		target *[]reconcile.Candidate
	}{
		{world.KindCharacter, &localLists.Characters},
		{world.KindItem, &localLists.Items},
		{world.KindLocation, &localLists.Locations},
		{world.KindFaction, &localLists.Factions},
	} {
		records, listErr := s.store.ListByKind(ctx, spec.kind)
		if listErr != nil {
			return remoteLists, localLists, listErr
		}
		for i := range records {
			*spec.target = append(*spec.target, reconcile.Candidate{
				ID:   records[i].ID,
				Name: records[i].Name,
				Type: records[i].Subtype,
			})
		}
	}
	return remoteLists, localLists, nil
}
