package world

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrRecordNotFound reports a lookup for an id the store no longer holds.
// The executor treats it as a skipped, non-fatal unit of work.
var ErrRecordNotFound = errors.New("world record not found")

// Store is the gorm-backed world store: the live, user-editable document
// graph of the hosting session.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store over the given database connection.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the world_records table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

// ListByKind returns all records of one kind, ordered by name.
func (s *Store) ListByKind(ctx context.Context, kind string) ([]Record, error) {
	var records []Record
	err := s.db.WithContext(ctx).Where("kind = ?", kind).Order("name").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", kind, err)
	}
	return records, nil
}

// ListCharacters returns all character records.
func (s *Store) ListCharacters(ctx context.Context) ([]Record, error) {
	return s.ListByKind(ctx, KindCharacter)
}

// ListItems returns all item records.
func (s *Store) ListItems(ctx context.Context) ([]Record, error) {
	return s.ListByKind(ctx, KindItem)
}

// ListLocations returns all location records.
func (s *Store) ListLocations(ctx context.Context) ([]Record, error) {
	return s.ListByKind(ctx, KindLocation)
}

// ListFactions returns all faction records.
func (s *Store) ListFactions(ctx context.Context) ([]Record, error) {
	return s.ListByKind(ctx, KindFaction)
}

// ListJournals returns all free-text journal records.
func (s *Store) ListJournals(ctx context.Context) ([]Record, error) {
	return s.ListByKind(ctx, KindJournal)
}

// ListAll returns every record in the store.
func (s *Store) ListAll(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Get returns the record with the given id, or ErrRecordNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return &record, nil
}

// FindByRemoteID returns the record cross-referencing the given remote id,
// or ErrRecordNotFound.
func (s *Store) FindByRemoteID(ctx context.Context, remoteID string) (*Record, error) {
	var record Record
	err := s.db.WithContext(ctx).Where("remote_id = ?", remoteID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: remote id %s", ErrRecordNotFound, remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up remote id %s: %w", remoteID, err)
	}
	return &record, nil
}

// FindByName returns the first record of a kind with the given name
// (case-insensitive), or ErrRecordNotFound.
func (s *Store) FindByName(ctx context.Context, kind, name string) (*Record, error) {
	var record Record
	err := s.db.WithContext(ctx).Where("kind = ? AND LOWER(name) = LOWER(?)", kind, name).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s %q", ErrRecordNotFound, kind, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}
	return &record, nil
}

// CreateRecord is the input to record creation.
type CreateRecord struct {
	Kind        string
	Subtype     string
	Name        string
	Folder      string
	Description string
	Images      []string
	Metadata    map[string]any
}

// Create inserts a new record and returns its id.
func (s *Store) Create(ctx context.Context, data CreateRecord) (string, error) {
	if data.Kind == "" || data.Name == "" {
		return "", fmt.Errorf("record kind and name are required")
	}

	images, err := encodeJSON(data.Images)
	if err != nil {
		return "", fmt.Errorf("failed to encode images: %w", err)
	}
	metadata, err := encodeJSON(data.Metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	record := Record{
		ID:          uuid.NewString(),
		Kind:        data.Kind,
		Subtype:     data.Subtype,
		Name:        data.Name,
		Folder:      data.Folder,
		Description: data.Description,
		Images:      images,
		Metadata:    metadata,
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", data.Kind, err)
	}

	s.logger.Debug("Created world record",
		zap.String("id", record.ID),
		zap.String("kind", record.Kind),
		zap.String("name", record.Name))
	return record.ID, nil
}

// SetCrossReference records the remote identity of a local record.
func (s *Store) SetCrossReference(ctx context.Context, id, remoteID, campaignID string) error {
	return s.update(ctx, id, map[string]any{
		"remote_id":          remoteID,
		"remote_campaign_id": campaignID,
	})
}

// SetDescription replaces a record's body text.
func (s *Store) SetDescription(ctx context.Context, id, description string) error {
	return s.update(ctx, id, map[string]any{"description": description})
}

// SetSheetType records the engine's classification for the record.
func (s *Store) SetSheetType(ctx context.Context, id, sheetType string) error {
	return s.update(ctx, id, map[string]any{"sheet_type": sheetType})
}

// SetFingerprint stores the content fingerprint used for idempotence checks.
func (s *Store) SetFingerprint(ctx context.Context, id, fingerprint string) error {
	return s.update(ctx, id, map[string]any{"fingerprint": fingerprint})
}

// SetRelationshipMetadata replaces both relationship fields of a record.
func (s *Store) SetRelationshipMetadata(ctx context.Context, id string, outbound OutboundRefs, refs []string) error {
	outboundJSON, err := encodeJSON(outbound)
	if err != nil {
		return fmt.Errorf("failed to encode relationship metadata: %w", err)
	}
	refsJSON, err := encodeJSON(refs)
	if err != nil {
		return fmt.Errorf("failed to encode legacy refs: %w", err)
	}
	return s.update(ctx, id, map[string]any{
		"relationship_outbound": outboundJSON,
		"relationship_refs":     refsJSON,
	})
}

// SetLocalCrossRefs replaces the list of related local records of other kinds.
func (s *Store) SetLocalCrossRefs(ctx context.Context, id string, refIDs []string) error {
	refsJSON, err := encodeJSON(refIDs)
	if err != nil {
		return fmt.Errorf("failed to encode local cross refs: %w", err)
	}
	return s.update(ctx, id, map[string]any{"local_cross_refs": refsJSON})
}

// SetParentLocation sets or clears (empty parentID) a location's parent.
// Cycle checking is the link graph indexer's job; the store only persists.
func (s *Store) SetParentLocation(ctx context.Context, id, parentID string) error {
	return s.update(ctx, id, map[string]any{"parent_location_id": parentID})
}

// ResetSyncMetadata clears every engine-owned metadata field on all records.
// It is idempotent and touches nothing else, which distinguishes a sync
// reset from a destructive delete.
func (s *Store) ResetSyncMetadata(ctx context.Context) error {
	err := s.db.WithContext(ctx).Model(&Record{}).Where("1 = 1").Updates(map[string]any{
		"sheet_type":            "",
		"remote_id":             "",
		"remote_campaign_id":    "",
		"relationship_outbound": "",
		"relationship_refs":     "",
		"parent_location_id":    "",
		"local_cross_refs":      "",
		"fingerprint":           "",
	}).Error
	if err != nil {
		return fmt.Errorf("failed to reset sync metadata: %w", err)
	}
	s.logger.Info("Cleared sync metadata on all world records")
	return nil
}

func (s *Store) update(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&Record{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update record %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	return nil
}
