package syncplan

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"campaign-sync/core/reconcile"
	"campaign-sync/core/remote"
	"campaign-sync/core/storage"
	"campaign-sync/core/utils"
	"campaign-sync/feature/extract"
	"campaign-sync/feature/world"
)

// ErrAlreadyRunning is returned when Execute is called while a plan is
// still in flight.
var ErrAlreadyRunning = errors.New("a sync plan is already executing")

// Store is the slice of the world store the executor needs.
type Store interface {
	Get(ctx context.Context, id string) (*world.Record, error)
	Create(ctx context.Context, data world.CreateRecord) (string, error)
	FindByName(ctx context.Context, kind, name string) (*world.Record, error)
	FindByRemoteID(ctx context.Context, remoteID string) (*world.Record, error)
	SetCrossReference(ctx context.Context, id, remoteID, campaignID string) error
	SetDescription(ctx context.Context, id, description string) error
	SetParentLocation(ctx context.Context, id, parentID string) error
	ListAll(ctx context.Context) ([]world.Record, error)
}

// Mirror copies a remote image into local object storage and returns the
// mirrored URL. Optional; a nil mirror leaves image URLs untouched.
type Mirror interface {
	MirrorURL(ctx context.Context, url string) (string, error)
}

// Executor runs a plan against the world store and the campaign service.
//
// Execution is strictly serial: job ordering is a correctness mechanism,
// since local records must exist with a cross-reference id before later
// jobs can link against them. There is no cancellation mid-plan and no
// engine-level retry; a re-run of failed jobs is the caller's call.
type Executor struct {
	store       Store
	client      remote.Client
	mirror      Mirror
	logger      *zap.Logger
	campaignID  string
	recapFolder string

	running  atomic.Bool
	progress Progress
}

// ExecutorConfig wires an Executor.
type ExecutorConfig struct {
	Store       Store
	Client      remote.Client
	Mirror      Mirror
	Logger      *zap.Logger
	CampaignID  string
	RecapFolder string
}

// NewExecutor builds an Executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		store:       cfg.Store,
		client:      cfg.Client,
		mirror:      cfg.Mirror,
		logger:      cfg.Logger,
		campaignID:  cfg.CampaignID,
		recapFolder: cfg.RecapFolder,
	}
}

// Progress returns the shared progress counters for the running (or last)
// plan.
func (e *Executor) Progress() *Progress {
	return &e.progress
}

// Execute runs every job in plan order and returns the report. Per-job
// errors accumulate in the report instead of aborting the plan; the only
// error returned directly is the re-entrancy guard.
func (e *Executor) Execute(ctx context.Context, plan *Plan) (*Report, error) {
	if !e.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer e.running.Store(false)

	report := &Report{Total: plan.Total()}
	e.progress.reset(report.Total)

	phases := []struct {
		name string
		jobs []Job
	}{
		{"create local records", plan.CreateLocal},
		{"import references", plan.ImportReferences},
		{"derive recaps", plan.Recaps},
		{"remote operations", plan.RemoteOps},
	}

	for _, phase := range phases {
		start := time.Now()
		for i := range phase.jobs {
			e.runJob(ctx, &phase.jobs[i], report)
		}
		e.logger.Info("Sync phase complete",
			zap.String("phase", phase.name),
			zap.Int("jobs", len(phase.jobs)),
			zap.Duration("took", time.Since(start)))
	}

	report.Processed, _ = e.progress.Snapshot()
	e.logger.Info("Sync plan finished",
		zap.Int("processed", report.Processed),
		zap.Int("total", report.Total),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", len(report.Failures)))
	return report, nil
}

// runJob executes one job and always advances the progress counter, so the
// counter reaches Total whatever the outcomes.
func (e *Executor) runJob(ctx context.Context, job *Job, report *Report) {
	defer e.progress.step()

	err := e.dispatch(ctx, job)
	if err == nil {
		return
	}
	// A plan referencing a record that no longer exists is a skipped,
	// processed unit of work, not a failure.
	if errors.Is(err, world.ErrRecordNotFound) {
		report.Skipped++
		e.logger.Warn("Skipped job for missing record",
			zap.String("op", string(job.Op)),
			zap.String("name", job.Name),
			zap.String("localId", job.LocalID))
		return
	}

	report.Failures = append(report.Failures, Failure{
		Op:       job.Op,
		Name:     job.Name,
		RemoteID: job.RemoteID,
		LocalID:  job.LocalID,
		Error:    err.Error(),
	})
	e.logger.Error("Sync job failed",
		zap.String("op", string(job.Op)),
		zap.String("name", job.Name),
		zap.Error(err))
}

func (e *Executor) dispatch(ctx context.Context, job *Job) error {
	switch job.Op {
	case OpCreateLocal:
		return e.createLocal(ctx, job)
	case OpImportReference:
		return e.importReference(ctx, job)
	case OpRecap:
		return e.recap(ctx, job)
	case OpExport:
		return e.export(ctx, job)
	case OpLink:
		return e.link(ctx, job)
	}
	return fmt.Errorf("unknown op %q", job.Op)
}

// createLocal imports a remote entity as a full local record and writes the
// cross-reference back onto it.
func (e *Executor) createLocal(ctx context.Context, job *Job) error {
	data := world.CreateRecord{
		Kind:        kindFor(job.Category),
		Subtype:     subtypeFor(job.Type),
		Name:        job.Name,
		Description: job.Description,
	}
	if url := e.mirrored(ctx, job.ImageURL); url != "" {
		data.Images = []string{url}
	}

	localID, err := e.store.Create(ctx, data)
	if err != nil {
		return err
	}
	if err := e.store.SetCrossReference(ctx, localID, job.RemoteID, e.campaignID); err != nil {
		return err
	}

	// Parent pointers only resolve when the parent was imported or linked
	// earlier; a missing parent is not an error. Freshly created records
	// cannot form a cycle with pre-existing ones, so the store-level
	// setter is enough.
	if job.ParentID != "" {
		if parent := e.localIDForRemote(ctx, job.ParentID); parent != "" {
			return e.store.SetParentLocation(ctx, localID, parent)
		}
	}
	return nil
}

// importReference imports a remote-only entity the user did not opt into as
// a lightweight journal pointing at the remote record.
func (e *Executor) importReference(ctx context.Context, job *Job) error {
	localID, err := e.store.Create(ctx, world.CreateRecord{
		Kind:        world.KindJournal,
		Name:        job.Name,
		Folder:      "References",
		Description: utils.Truncate(job.Description, 400),
	})
	if err != nil {
		return err
	}
	return e.store.SetCrossReference(ctx, localID, job.RemoteID, e.campaignID)
}

// recap creates or updates the journal record derived from one session.
func (e *Executor) recap(ctx context.Context, job *Job) error {
	title := job.Session.Title
	if title == "" {
		title = "Session " + job.Session.Date.Format("2006-01-02")
	}

	existing, err := e.store.FindByName(ctx, world.KindJournal, title)
	if err == nil {
		return e.store.SetDescription(ctx, existing.ID, job.Session.Summary)
	}
	if !errors.Is(err, world.ErrRecordNotFound) {
		return err
	}

	localID, err := e.store.Create(ctx, world.CreateRecord{
		Kind:        world.KindJournal,
		Name:        title,
		Folder:      e.recapFolder,
		Description: job.Session.Summary,
	})
	if err != nil {
		return err
	}
	return e.store.SetCrossReference(ctx, localID, job.Session.ID, e.campaignID)
}

// export creates the remote record for a local-only entity and writes the
// cross-reference back.
func (e *Executor) export(ctx context.Context, job *Job) error {
	record, err := e.store.Get(ctx, job.LocalID)
	if err != nil {
		return err
	}

	// Remote descriptions are plain prose: markup stripped, reference
	// tokens replaced by their labels.
	description := extract.StripTokens(utils.HTMLToText(record.Description))
	image := firstAbsolute(record.ImageList())

	var created remote.Created
	switch job.Category {
	case reconcile.CategoryCharacters:
		created, err = e.client.CreateCharacter(ctx, remote.Character{
			Name:        record.Name,
			Type:        remoteTypeFor(record.Subtype),
			Description: description,
			ImageURL:    image,
		})
	case reconcile.CategoryItems:
		created, err = e.client.CreateItem(ctx, remote.Item{
			Name:        record.Name,
			Description: description,
			ImageURL:    image,
		})
	case reconcile.CategoryLocations:
		created, err = e.client.CreateLocation(ctx, remote.Location{
			Name:        record.Name,
			Description: description,
			ImageURL:    image,
			ParentID:    e.remoteIDForLocal(ctx, record.ParentLocationID),
		})
	default:
		return fmt.Errorf("category %q is not exportable", job.Category)
	}
	if err != nil {
		return err
	}

	return e.store.SetCrossReference(ctx, job.LocalID, created.ID, e.campaignID)
}

// link cross-references a matched pair.
func (e *Executor) link(ctx context.Context, job *Job) error {
	if _, err := e.store.Get(ctx, job.LocalID); err != nil {
		return err
	}
	return e.store.SetCrossReference(ctx, job.LocalID, job.RemoteID, e.campaignID)
}

// mirrored runs an image URL through the mirror when one is configured.
// Mirror failures degrade to the original URL.
func (e *Executor) mirrored(ctx context.Context, url string) string {
	if url == "" || e.mirror == nil {
		return url
	}
	mirroredURL, err := e.mirror.MirrorURL(ctx, url)
	if err != nil {
		e.logger.Warn("Image mirror failed, keeping original URL",
			zap.String("url", url), zap.Error(err))
		return url
	}
	return mirroredURL
}

func (e *Executor) localIDForRemote(ctx context.Context, remoteID string) string {
	record, err := e.store.FindByRemoteID(ctx, remoteID)
	if err != nil {
		return ""
	}
	return record.ID
}

func (e *Executor) remoteIDForLocal(ctx context.Context, localID string) string {
	if localID == "" {
		return ""
	}
	record, err := e.store.Get(ctx, localID)
	if err != nil {
		return ""
	}
	return record.RemoteID
}

func kindFor(c reconcile.Category) string {
	switch c {
	case reconcile.CategoryCharacters:
		return world.KindCharacter
	case reconcile.CategoryItems:
		return world.KindItem
	case reconcile.CategoryLocations:
		return world.KindLocation
	case reconcile.CategoryFactions:
		return world.KindFaction
	}
	return world.KindJournal
}

// subtypeFor maps a remote character type onto the local classification.
func subtypeFor(remoteType string) string {
	switch remoteType {
	case "PC":
		return "player"
	case "NPC":
		return "npc"
	}
	return ""
}

// remoteTypeFor maps a local character subtype onto the remote type.
func remoteTypeFor(subtype string) string {
	switch subtype {
	case "player", "pc":
		return "PC"
	default:
		return "NPC"
	}
}

func firstAbsolute(urls []string) string {
	for _, u := range urls {
		if storage.IsAbsoluteURL(u) {
			return u
		}
	}
	return ""
}
