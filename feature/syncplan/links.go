package syncplan

import (
	"context"

	"go.uber.org/zap"

	"campaign-sync/core/remote"
	"campaign-sync/feature/linkgraph"
	"campaign-sync/feature/world"
)

// LinkPushReport summarizes one relationship push.
type LinkPushReport struct {
	Created int `json:"created"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

// PushLinks mirrors the local link graph onto the campaign service.
//
// Only edges whose endpoints both carry remote ids are pushable. Existing
// remote links are fetched once; missing edges are created, and stale links
// are removed only when both endpoints are cross-referenced locally, so
// relationships among remote-only records are never touched. Per-link
// failures are counted and logged, not fatal.
func PushLinks(ctx context.Context, client remote.Client, store Store, graph *linkgraph.Graph, logger *zap.Logger) (*LinkPushReport, error) {
	records, err := store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	remoteByLocal := make(map[string]string)
	kindByLocal := make(map[string]string)
	linked := make(map[string]bool)
	for i := range records {
		r := &records[i]
		kindByLocal[r.ID] = r.Kind
		if r.RemoteID != "" {
			remoteByLocal[r.ID] = r.RemoteID
			linked[r.RemoteID] = true
		}
	}

	existing, err := client.ListLinks(ctx)
	if err != nil {
		return nil, err
	}
	existingByEdge := make(map[[2]string]remote.Link, len(existing))
	for _, l := range existing {
		existingByEdge[[2]string{l.FromID, l.ToID}] = l
	}

	desired := map[[2]string]remote.Link{}
	for fromLocal, out := range graph.OutboundByFromID {
		fromRemote, ok := remoteByLocal[fromLocal]
		if !ok {
			continue
		}
		for _, toLocal := range out.All() {
			toRemote, ok := remoteByLocal[toLocal]
			if !ok {
				continue
			}
			desired[[2]string{fromRemote, toRemote}] = remote.Link{
				FromID:   fromRemote,
				FromKind: remoteKindFor(kindByLocal[fromLocal]),
				ToID:     toRemote,
				ToKind:   remoteKindFor(kindByLocal[toLocal]),
			}
		}
	}

	report := &LinkPushReport{}
	for edge, link := range desired {
		if _, ok := existingByEdge[edge]; ok {
			continue
		}
		if _, err := client.CreateLink(ctx, link); err != nil {
			report.Failed++
			logger.Error("Failed to create remote link",
				zap.String("from", link.FromID), zap.String("to", link.ToID), zap.Error(err))
			continue
		}
		report.Created++
	}

	for edge, link := range existingByEdge {
		if _, wanted := desired[edge]; wanted {
			continue
		}
		// Remove only links fully under local management.
		if !linked[link.FromID] || !linked[link.ToID] {
			continue
		}
		if err := client.DeleteLink(ctx, link.ID); err != nil {
			report.Failed++
			logger.Error("Failed to delete stale remote link",
				zap.String("id", link.ID), zap.Error(err))
			continue
		}
		report.Removed++
	}

	logger.Info("Pushed relationship links",
		zap.Int("created", report.Created),
		zap.Int("removed", report.Removed),
		zap.Int("failed", report.Failed))
	return report, nil
}

func remoteKindFor(kind string) string {
	switch kind {
	case world.KindCharacter:
		return "character"
	case world.KindItem:
		return "item"
	case world.KindLocation:
		return "location"
	case world.KindFaction:
		return "faction"
	}
	return "note"
}
