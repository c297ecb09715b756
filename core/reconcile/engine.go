package reconcile

import (
	"sort"
	"strings"
)

// Reconcile matches the remote candidate lists against the local ones,
// category by category. It is a pure function: the same two inputs always
// produce the same pairing, so re-running sync never creates duplicates.
func Reconcile(remote, local Lists) Result {
	return Result{
		Characters: matchCategory(remote.Characters, local.Characters),
		Items:      matchCategory(remote.Items, local.Items),
		Locations:  matchCategory(remote.Locations, local.Locations),
		Factions:   matchCategory(remote.Factions, local.Factions),
	}
}

// matchCategory runs the two matching passes for one category.
//
// Pass one scans remote candidates in input order and greedily claims the
// first unclaimed local candidate with the same name (case-insensitive),
// subject to the type constraint. Pass two retries rows still unmatched on
// both sides with the name check only, which handles local stores whose
// records carry no usable type. Output rows are sorted by name for stable
// display.
func matchCategory(remote, local []Candidate) Pair {
	remoteRows := make([]Row, len(remote))
	for i, c := range remote {
		remoteRows[i] = Row{ID: c.ID, Name: c.Name, Type: c.Type, Selected: true}
	}
	localRows := make([]Row, len(local))
	for i, c := range local {
		localRows[i] = Row{ID: c.ID, Name: c.Name, Type: c.Type, Selected: true}
	}

	claimed := make(map[int]bool, len(localRows))

	// Pass one: name + type constraint.
	for i := range remoteRows {
		for j := range localRows {
			if claimed[j] {
				continue
			}
			if !sameName(remoteRows[i].Name, localRows[j].Name) {
				continue
			}
			if !typesCompatible(remoteRows[i].Type, localRows[j].Type) {
				continue
			}
			remoteRows[i].Match = localRows[j].ID
			localRows[j].Match = remoteRows[i].ID
			claimed[j] = true
			break
		}
	}

	// Pass two: name only, over rows unmatched on both sides.
	for i := range remoteRows {
		if remoteRows[i].Match != "" {
			continue
		}
		for j := range localRows {
			if claimed[j] {
				continue
			}
			if !sameName(remoteRows[i].Name, localRows[j].Name) {
				continue
			}
			remoteRows[i].Match = localRows[j].ID
			localRows[j].Match = remoteRows[i].ID
			claimed[j] = true
			break
		}
	}

	sortRows(remoteRows)
	sortRows(localRows)
	return Pair{Remote: remoteRows, Local: localRows}
}

// sameName compares display names case-insensitively after trimming.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// typesCompatible applies the pass-one type constraint. An unset local type
// accepts any remote type; otherwise the types must agree, with the
// remote-service vocabulary ("PC"/"NPC") mapped onto the world store's
// sheet subtypes.
func typesCompatible(remoteType, localType string) bool {
	if localType == "" {
		return true
	}
	if strings.EqualFold(remoteType, localType) {
		return true
	}
	switch strings.ToUpper(remoteType) {
	case "PC":
		return strings.EqualFold(localType, "player")
	case "NPC":
		return strings.EqualFold(localType, "npc") || strings.EqualFold(localType, "character")
	}
	return false
}

// sortRows orders rows by name, then id, for deterministic display.
func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].ID < rows[j].ID
	})
}
