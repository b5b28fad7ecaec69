package store

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

// BunRecordRepository implements RecordRepository with optional caching.
type BunRecordRepository struct {
	repo repository.Repository[*AssetRecord]
}

var _ RecordRepository = (*BunRecordRepository)(nil)

// NewBunRecordRepository creates an asset row repository without caching.
func NewBunRecordRepository(db *bun.DB) *BunRecordRepository {
	return NewBunRecordRepositoryWithCache(db, nil, nil)
}

// NewBunRecordRepositoryWithCache creates an asset row repository with caching support.
func NewBunRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRecordRepository {
	base := NewAssetRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRecordRepository{repo: base}
}

func (r *BunRecordRepository) Create(ctx context.Context, record *AssetRecord) (*AssetRecord, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "asset", record.ID.String())
	}
	return created, nil
}

func (r *BunRecordRepository) Update(ctx context.Context, record *AssetRecord) (*AssetRecord, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns("display_name", "literal", "interval", "revision", "updated_at"),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "asset", record.ID.String())
	}
	return updated, nil
}

func (r *BunRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*AssetRecord, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "asset", id.String())
	}
	return record, nil
}

func (r *BunRecordRepository) List(ctx context.Context) ([]*AssetRecord, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("asset_type ASC", "asset_id ASC")
	}))
	return records, err
}

func (r *BunRecordRepository) ListByType(ctx context.Context, assetType string) ([]*AssetRecord, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.asset_type = ?", assetType).Order("asset_id ASC")
	}))
	return records, err
}

func (r *BunRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return mapRepositoryError(r.repo.Delete(ctx, &AssetRecord{ID: id}), "asset", id.String())
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s", ErrRecordConflict, resource, key)
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

// isUniqueViolation recognises unique constraint failures from both
// supported dialects.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return strings.TrimSpace(pgErr.Code) == "23505"
	}
	var sqliteErr sqlite3.Error
	if stderrors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
