package backup

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/integrations/commerce"
	"resale/internal/types"
	"resale/logger"
)

type (
	BuildParams struct {
		Type      types.BackupType
		CreatedBy string
		// IncludeExternalContent forces the commerce platform snapshot even
		// for an incremental backup. Full backups always include it.
		IncludeExternalContent bool
	}

	// Builder assembles one immutable BackupRecord. It reads but never
	// writes the document store; persisting the record is the store's job.
	Builder interface {
		Build(ctx context.Context, params BuildParams) (*types.BackupRecord, error)
	}

	builder struct {
		docs     docstore.Store
		backups  database.BackupRepository
		commerce commerce.Client
	}
)

func NewBuilder(docs docstore.Store, backups database.BackupRepository, commerce commerce.Client) Builder {
	return &builder{docs: docs, backups: backups, commerce: commerce}
}

func (b builder) Build(ctx context.Context, params BuildParams) (*types.BackupRecord, error) {
	if !params.Type.Valid() {
		return nil, errors.Errorf("unknown backup type: %s", params.Type)
	}

	logger.Info("building backup snapshot",
		zap.String("type", string(params.Type)),
		zap.String("created_by", params.CreatedBy))

	record := &types.BackupRecord{
		ID:        uuid.New(),
		Type:      params.Type,
		CreatedAt: time.Now(),
		CreatedBy: params.CreatedBy,
	}

	changed := 0
	for _, name := range TrackedCollections {
		query := docstore.Query{}
		if params.Type == types.BackupTypeIncremental {
			since, err := b.highWaterMark(ctx, name)
			if err != nil {
				return nil, errors.Wrap(err, "failed to resolve high-water mark for "+name)
			}
			// a collection never captured before gets a full read
			query.UpdatedSince = since
		}

		docs, err := b.docs.Find(ctx, name, query)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read collection "+name)
		}

		if params.Type == types.BackupTypeIncremental {
			changed += len(docs)
		}
		record.Collections = append(record.Collections, types.CollectionSnapshot{
			Name:  name,
			Count: len(docs),
			Data:  docs,
		})
	}

	if params.Type == types.BackupTypeIncremental && changed == 0 {
		return nil, ErrNothingToBackup
	}

	if params.Type == types.BackupTypeFull || params.IncludeExternalContent {
		record.ExternalContent = b.fetchExternalContent(ctx)
	}

	return record, nil
}

// highWaterMark returns the creation time of the most recent backup of any
// type that captured the named collection, or nil when none exists.
func (b builder) highWaterMark(ctx context.Context, collection string) (*time.Time, error) {
	previous, err := b.backups.LatestContaining(ctx, collection)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, nil
	}
	since := previous.CreatedAt
	return &since, nil
}

// fetchExternalContent issues the five platform reads concurrently. A failed
// category records its error inline and never aborts the others; partial
// external data beats aborting the whole backup.
func (b builder) fetchExternalContent(ctx context.Context) *types.ExternalContent {
	content := &types.ExternalContent{}

	fetch := func(target *types.ContentCategory, name string,
		list func(context.Context) (types.ContentCategory, error)) func() error {
		return func() error {
			result, err := list(ctx)
			if err != nil {
				logger.Warn("external content fetch failed",
					zap.String("category", name),
					zap.Error(err))
				target.Error = err.Error()
				return nil
			}
			*target = result
			return nil
		}
	}

	g := new(errgroup.Group)
	g.Go(fetch(&content.CatalogItems, "catalogItems", b.commerce.ListCatalogItems))
	g.Go(fetch(&content.ThemeAssets, "themeAssets", b.commerce.ListThemeAssets))
	g.Go(fetch(&content.EmbeddedScripts, "embeddedScripts", b.commerce.ListEmbeddedScripts))
	g.Go(fetch(&content.StructuredContent, "structuredContent", b.commerce.ListStructuredContentObjects))
	g.Go(fetch(&content.PublishedContent, "publishedContent", b.commerce.ListPublishedContent))
	_ = g.Wait()

	return content
}
