package reconcile

import "fmt"

// Toggle flips the Selected flag of the identified row and propagates the
// new value to its matched counterpart, if any, so that link/unlink stays
// symmetric. It returns false if no row with that id exists on the side.
func (p *Pair) Toggle(side Side, id string) bool {
	own, other := p.sides(side)

	row := findRow(own, id)
	if row == nil {
		return false
	}
	row.Selected = !row.Selected

	if row.Match != "" {
		if counterpart := findRow(other, row.Match); counterpart != nil {
			counterpart.Selected = row.Selected
		}
	}
	return true
}

// Rematch pairs the remote row with the local row, clearing any prior links
// of either row first so one-to-one symmetry holds when it returns. An empty
// localID unmatches the remote row. Unknown ids are an error; the rows are
// left untouched in that case.
func (p *Pair) Rematch(remoteID, localID string) error {
	remoteRow := findRow(p.Remote, remoteID)
	if remoteRow == nil {
		return fmt.Errorf("no remote row with id %q", remoteID)
	}

	var localRow *Row
	if localID != "" {
		localRow = findRow(p.Local, localID)
		if localRow == nil {
			return fmt.Errorf("no local row with id %q", localID)
		}
	}

	// Clear the remote row's existing link.
	if remoteRow.Match != "" {
		if prev := findRow(p.Local, remoteRow.Match); prev != nil {
			prev.Match = ""
		}
		remoteRow.Match = ""
	}

	if localRow == nil {
		return nil
	}

	// Clear the local row's existing link.
	if localRow.Match != "" {
		if prev := findRow(p.Remote, localRow.Match); prev != nil {
			prev.Match = ""
		}
		localRow.Match = ""
	}

	remoteRow.Match = localRow.ID
	localRow.Match = remoteRow.ID
	return nil
}

// sides returns the row slice for side and its opposite.
func (p *Pair) sides(side Side) (own, other []Row) {
	if side == SideRemote {
		return p.Remote, p.Local
	}
	return p.Local, p.Remote
}

func findRow(rows []Row, id string) *Row {
	for i := range rows {
		if rows[i].ID == id {
			return &rows[i]
		}
	}
	return nil
}
