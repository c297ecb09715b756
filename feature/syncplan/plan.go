package syncplan

import (
	"sort"

	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
)

// Snapshot is the remote campaign content the reconciliation was built
// from. Jobs copy their payload out of it so execution does not depend on
// the service returning the same lists twice.
type Snapshot struct {
	Characters []remote.Character
	Items      []remote.Item
	Locations  []remote.Location
	Factions   []remote.Faction
	Sessions   []remote.Session
}

// payload is the category-independent slice of a remote record a job needs.
type payload struct {
	name        string
	entityType  string
	description string
	imageURL    string
	parentID    string
}

func (s *Snapshot) payloads(c reconcile.Category) map[string]payload {
	out := map[string]payload{}
	switch c {
	case reconcile.CategoryCharacters:
		for _, r := range s.Characters {
			out[r.ID] = payload{name: r.Name, entityType: r.Type, description: r.Description, imageURL: r.ImageURL}
		}
	case reconcile.CategoryItems:
		for _, r := range s.Items {
			out[r.ID] = payload{name: r.Name, description: r.Description, imageURL: r.ImageURL}
		}
	case reconcile.CategoryLocations:
		for _, r := range s.Locations {
			out[r.ID] = payload{name: r.Name, description: r.Description, imageURL: r.ImageURL, parentID: r.ParentID}
		}
	case reconcile.CategoryFactions:
		for _, r := range s.Factions {
			out[r.ID] = payload{name: r.Name, description: r.Description, imageURL: r.ImageURL}
		}
	}
	return out
}

// Build derives the plan from a finalized reconciliation.
//
// Per category: a selected matched remote row becomes a link job; a
// selected unmatched remote row becomes a create-local job when opted in,
// otherwise a lightweight reference import; a selected unmatched local row
// becomes an export job. Factions are import-only, so local-only faction
// rows produce no exports. Sessions skip reconciliation entirely and always
// become recap jobs, sorted ascending by date.
func Build(result *reconcile.Result, snapshot *Snapshot, choices Choices) *Plan {
	plan := &Plan{
		Counters: map[reconcile.Category]Counter{},
	}

	for _, category := range reconcile.Categories {
		pair := result.Category(category)
		payloads := snapshot.payloads(category)
		counter := Counter{}

		for _, row := range pair.Remote {
			if !row.Selected {
				continue
			}
			if row.Match != "" {
				plan.RemoteOps = append(plan.RemoteOps, Job{
					Op:       OpLink,
					Category: category,
					RemoteID: row.ID,
					LocalID:  row.Match,
					Name:     row.Name,
				})
				counter.Links++
				continue
			}

			p := payloads[row.ID]
			job := Job{
				Category:    category,
				RemoteID:    row.ID,
				Name:        p.name,
				Type:        p.entityType,
				Description: p.description,
				ImageURL:    p.imageURL,
				ParentID:    p.parentID,
			}
			// Factions always import in full; other categories need the
			// explicit per-record opt-in to become local objects.
			if category == reconcile.CategoryFactions || choices.optedIn(row.ID) {
				job.Op = OpCreateLocal
				plan.CreateLocal = append(plan.CreateLocal, job)
			} else {
				job.Op = OpImportReference
				plan.ImportReferences = append(plan.ImportReferences, job)
			}
			counter.Imports++
		}

		if category != reconcile.CategoryFactions {
			for _, row := range pair.Local {
				if !row.Selected || row.Match != "" {
					continue
				}
				plan.RemoteOps = append(plan.RemoteOps, Job{
					Op:       OpExport,
					Category: category,
					LocalID:  row.ID,
					Name:     row.Name,
				})
				counter.Exports++
			}
		}

		plan.Counters[category] = counter
	}

	sessions := append([]remote.Session(nil), snapshot.Sessions...)
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	for i := range sessions {
		session := sessions[i]
		plan.Recaps = append(plan.Recaps, Job{
			Op:      OpRecap,
			Name:    session.Title,
			Session: &session,
		})
	}

	return plan
}
