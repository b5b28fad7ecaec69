package store

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewAssetRecordRepository creates a repository for persisted asset rows.
func NewAssetRecordRepository(db *bun.DB) repository.Repository[*AssetRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*AssetRecord]{
		NewRecord:          func() *AssetRecord { return &AssetRecord{} },
		GetID:              func(record *AssetRecord) uuid.UUID { return record.ID },
		SetID:              func(record *AssetRecord, id uuid.UUID) { record.ID = id },
		GetIdentifier:      func() string { return "asset_id" },
		GetIdentifierValue: func(record *AssetRecord) string { return record.AssetID },
	})
}

// EnsureSchema creates the asset record table when it is missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*AssetRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}
