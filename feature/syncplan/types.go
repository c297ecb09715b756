package syncplan

import (
	"sync"

	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
)

// Op is the kind of work a job performs.
type Op string

const (
	// OpCreateLocal creates a full local record for an opted-in remote-only
	// entity and writes back its cross-reference id.
	OpCreateLocal Op = "create-local"

	// OpImportReference imports a remote-only entity the user did not opt
	// into as a lightweight reference journal.
	OpImportReference Op = "import-reference"

	// OpRecap creates or updates a recap journal from a play session.
	OpRecap Op = "recap"

	// OpExport creates a remote record for a local-only entity.
	OpExport Op = "export"

	// OpLink cross-references a matched local/remote pair.
	OpLink Op = "link"
)

// Job is one unit of plan work. Jobs carry their payload so execution never
// re-fetches the remote lists the plan was built from.
type Job struct {
	Op       Op                 `json:"op"`
	Category reconcile.Category `json:"category,omitempty"`

	// RemoteID and LocalID identify the job's endpoints; which are set
	// depends on the op.
	RemoteID string `json:"remoteId,omitempty"`
	LocalID  string `json:"localId,omitempty"`

	// Payload snapshot for create-local and import-reference jobs.
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ParentID    string `json:"parentId,omitempty"`

	// Session payload for recap jobs.
	Session *remote.Session `json:"session,omitempty"`
}

// Counter tallies planned work for one category.
type Counter struct {
	Imports int `json:"imports"`
	Exports int `json:"exports"`
	Links   int `json:"links"`
}

// Plan is the ordered work derived from a finalized reconciliation plus the
// user's create-locally choices. It is built once and consumed exactly once
// by the executor.
type Plan struct {
	// CreateLocal runs first so later jobs can link against the new
	// records' cross-reference ids.
	CreateLocal []Job `json:"createLocal"`

	// ImportReferences are the remaining remote-only entities, imported as
	// lightweight reference journals.
	ImportReferences []Job `json:"importReferences"`

	// Recaps are session-derived journal jobs, sorted ascending by date.
	Recaps []Job `json:"recaps"`

	// RemoteOps are the export and link jobs, run last.
	RemoteOps []Job `json:"remoteOps"`

	// Counters tallies planned work per category.
	Counters map[reconcile.Category]Counter `json:"counters"`
}

// Total is the number of jobs across all phases.
func (p *Plan) Total() int {
	return len(p.CreateLocal) + len(p.ImportReferences) + len(p.Recaps) + len(p.RemoteOps)
}

// Choices are the per-record "also create locally" opt-ins collected after
// reconciliation. Keys are remote ids.
type Choices struct {
	CreateLocally map[string]bool `json:"createLocally"`
}

// optedIn reports whether a remote id was opted into full local creation.
func (c Choices) optedIn(remoteID string) bool {
	return c.CreateLocally[remoteID]
}

// Progress is the executor's shared counter pair. Processed increments
// exactly once per job whatever the outcome, so it always reaches Total.
type Progress struct {
	mu        sync.Mutex
	processed int
	total     int
}

func (p *Progress) reset(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed = 0
	p.total = total
}

func (p *Progress) step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processed++
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() (processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed, p.total
}

// Failure records one job that errored. The plan keeps going; failures are
// reported, not retried.
type Failure struct {
	Op       Op     `json:"op"`
	Name     string `json:"name"`
	RemoteID string `json:"remoteId,omitempty"`
	LocalID  string `json:"localId,omitempty"`
	Error    string `json:"error"`
}

// Report is the outcome of one plan execution.
type Report struct {
	Processed int       `json:"processed"`
	Total     int       `json:"total"`
	Skipped   int       `json:"skipped"`
	Failures  []Failure `json:"failures"`
}
