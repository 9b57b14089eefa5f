package docstore

import (
	"context"
	"errors"
	"time"

	errors2 "github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resale/internal/types"
)

// Tracked collection names. The backup engine snapshots exactly these; the
// engine's own records, configuration and lock live alongside them.
const (
	Products    = "products"
	Submissions = "submissions"
	Customers   = "customers"
	Wishlists   = "wishlists"
	Staff       = "staff"
	AuditLogs   = "audit_logs"

	Backups      = "backups"
	BackupConfig = "backup_config"
)

var ErrNotFound = errors.New("document not found")

type (
	// Query narrows a Find/Count to documents changed at or after a point in
	// time. The zero value matches everything.
	Query struct {
		UpdatedSince *time.Time
	}

	Store interface {
		Find(ctx context.Context, collection string, q Query) ([]types.Document, error)
		FindOne(ctx context.Context, collection, id string) (*types.Document, error)
		InsertMany(ctx context.Context, collection string, docs []types.Document) error
		Upsert(ctx context.Context, collection string, doc types.Document) error
		DeleteMany(ctx context.Context, collection string) (int64, error)
		DeleteOne(ctx context.Context, collection, id string) (bool, error)
		Count(ctx context.Context, collection string, q Query) (int64, error)
		Ping(ctx context.Context) error
	}

	store struct {
		db *gorm.DB
	}
)

func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, errors2.Wrap(err, "failed to open DB: "+path)
	}

	if err := db.AutoMigrate(
		&types.Document{},
		&types.BackupLock{}); err != nil {
		return nil, err
	}

	// sqlite is single-writer; one connection avoids SQLITE_BUSY under
	// concurrent lock acquisition
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func New(db *gorm.DB) Store {
	return &store{db: db}
}

func (s store) Find(ctx context.Context, collection string, q Query) ([]types.Document, error) {
	result := make([]types.Document, 0)
	err := s.query(ctx, collection, q).Order("id").Find(&result).Error
	return result, err
}

func (s store) FindOne(ctx context.Context, collection, id string) (*types.Document, error) {
	doc := &types.Document{}
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return doc, err
}

func (s store) InsertMany(ctx context.Context, collection string, docs []types.Document) error {
	if len(docs) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]types.Document, len(docs))
	for i, d := range docs {
		d.Collection = collection
		if d.CreatedAt.IsZero() {
			d.CreatedAt = now
		}
		if d.UpdatedAt.IsZero() {
			d.UpdatedAt = now
		}
		rows[i] = d
	}
	return s.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

func (s store) Upsert(ctx context.Context, collection string, doc types.Document) error {
	doc.Collection = collection
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "collection"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

func (s store) DeleteMany(ctx context.Context, collection string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Delete(&types.Document{})
	return result.RowsAffected, result.Error
}

func (s store) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&types.Document{})
	return result.RowsAffected > 0, result.Error
}

func (s store) Count(ctx context.Context, collection string, q Query) (int64, error) {
	var count int64
	err := s.query(ctx, collection, q).Model(&types.Document{}).Count(&count).Error
	return count, err
}

func (s store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s store) query(ctx context.Context, collection string, q Query) *gorm.DB {
	tx := s.db.WithContext(ctx).Where("collection = ?", collection)
	if q.UpdatedSince != nil {
		tx = tx.Where("updated_at >= ?", *q.UpdatedSince)
	}
	return tx
}
