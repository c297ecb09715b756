package extract

import (
	"context"
	"fmt"

	"campaign-sync/core/utils"
	"campaign-sync/feature/world"

	"go.uber.org/zap"
)

// Source is the slice of the world store the extractor reads from.
type Source interface {
	ListByKind(ctx context.Context, kind string) ([]world.Record, error)
}

// Extractor produces a uniform GenericEntity stream from raw world records.
// It is read-only; a malformed record is skipped with a warning and never
// aborts the pass.
type Extractor struct {
	source Source
	logger *zap.Logger
}

// New creates an extractor over the given source.
func New(source Source, logger *zap.Logger) *Extractor {
	return &Extractor{source: source, logger: logger}
}

// Run extracts every supported record kind. The sequence is finite and
// restartable: each call re-reads the store from scratch.
func (e *Extractor) Run(ctx context.Context) ([]GenericEntity, error) {
	var entities []GenericEntity
	for _, kind := range world.Kinds {
		records, err := e.source.ListByKind(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("extraction failed listing %s records: %w", kind, err)
		}
		for i := range records {
			entity, err := Normalize(&records[i])
			if err != nil {
				e.logger.Warn("Skipping malformed record",
					zap.String("id", records[i].ID),
					zap.String("kind", kind),
					zap.Error(err))
				continue
			}
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

// Normalize converts one raw record into the uniform entity shape.
//
// The description falls back in documented order: the record's own
// description field, then the metadata keys "biography", "notes" and
// "summary", first non-empty wins.
func Normalize(record *world.Record) (GenericEntity, error) {
	if record.ID == "" {
		return GenericEntity{}, fmt.Errorf("record has no id")
	}
	if record.Name == "" {
		return GenericEntity{}, fmt.Errorf("record %s has no name", record.ID)
	}

	bag := record.MetadataBag()

	body := record.Description
	for _, key := range []string{"biography", "notes", "summary"} {
		if body != "" {
			break
		}
		body = utils.ToString(bag[key])
	}
	body = utils.HTMLToText(body)

	// Links are parsed before the tokens are stripped; the body itself is
	// plain prose from here on.
	links := ParseLinks(body)
	body = StripTokens(body)

	images := record.ImageList()
	for _, key := range []string{"img", "portrait", "tokenImage"} {
		if img := utils.ToString(bag[key]); img != "" {
			images = append(images, img)
		}
	}

	return GenericEntity{
		Kind:       record.Kind,
		Subtype:    record.Subtype,
		Name:       record.Name,
		Body:       body,
		Tags:       utils.ToStringSlice(bag["tags"]),
		Links:      links,
		Images:     images,
		SourceID:   record.ID,
		FolderName: record.Folder,
		Metadata:   bag,
	}, nil
}
