package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-assetfield/internal/assets"
	"github.com/goliatone/go-assetfield/internal/identity"
	"github.com/google/uuid"
)

var ErrRepositoryRequired = errors.New("store: record repository required")

// Snapshot returns copies of every persisted asset, ordered by type then id.
func (s *Store) Snapshot() []*assets.Asset {
	out := make([]*assets.Asset, 0)
	for _, t := range assets.Types() {
		for _, asset := range s.List(t) {
			if asset.IsPersisted() {
				out = append(out, asset)
			}
		}
	}
	return out
}

// Save writes every persisted asset to repo and removes rows whose asset no
// longer exists. Temporary assets are skipped.
func (s *Store) Save(ctx context.Context, repo RecordRepository) (int, error) {
	if repo == nil {
		return 0, ErrRepositoryRequired
	}
	revision := s.Revision()
	now := time.Now().UTC()
	keep := make(map[uuid.UUID]struct{})
	written := 0

	for _, asset := range s.Snapshot() {
		record, err := ToRecord(asset, revision)
		if err != nil {
			return written, err
		}
		record.UpdatedAt = now
		keep[record.ID] = struct{}{}

		if _, err := repo.GetByID(ctx, record.ID); err != nil {
			if !IsNotFound(err) {
				return written, err
			}
			record.CreatedAt = now
			if _, err := repo.Create(ctx, record); err != nil {
				return written, fmt.Errorf("store: create %s: %w", asset.Key(), err)
			}
		} else if _, err := repo.Update(ctx, record); err != nil {
			return written, fmt.Errorf("store: update %s: %w", asset.Key(), err)
		}
		written++
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return written, err
	}
	for _, record := range existing {
		if _, ok := keep[record.ID]; ok {
			continue
		}
		if err := repo.Delete(ctx, record.ID); err != nil && !IsNotFound(err) {
			return written, fmt.Errorf("store: delete %s: %w", record.AssetID, err)
		}
	}
	s.logger.Info("store.save", "assets", written, "revision", revision)
	return written, nil
}

// Load registers every stored row as a persisted asset. Loading is not an
// edit: the revision and undo history are left untouched.
func (s *Store) Load(ctx context.Context, repo RecordRepository) (int, error) {
	if repo == nil {
		return 0, ErrRepositoryRequired
	}
	records, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	return s.loadRecords(records), nil
}

// LoadType is Load restricted to rows of asset type t.
func (s *Store) LoadType(ctx context.Context, repo RecordRepository, t assets.Type) (int, error) {
	if repo == nil {
		return 0, ErrRepositoryRequired
	}
	if !t.Valid() {
		return 0, assets.ErrUnknownType
	}
	records, err := repo.ListByType(ctx, t.String())
	if err != nil {
		return 0, err
	}
	return s.loadRecords(records), nil
}

func (s *Store) loadRecords(records []*AssetRecord) int {
	loaded := 0
	for _, record := range records {
		asset, err := FromRecord(record)
		if err != nil {
			s.logger.Warn("store.load.skip", "asset_id", record.AssetID, "error", err)
			continue
		}
		s.register(asset)
		loaded++
	}
	s.logger.Info("store.load", "assets", loaded)
	return loaded
}

// ToRecord converts a persisted asset into its row form.
func ToRecord(asset *assets.Asset, revision int) (*AssetRecord, error) {
	if !asset.IsPersisted() {
		return nil, fmt.Errorf("%w: %s is temporary", ErrAssetInvalid, asset.Key())
	}
	info, err := assets.Describe(asset.Type)
	if err != nil {
		return nil, err
	}
	literal, err := info.Encode(asset.Payload)
	if err != nil {
		return nil, fmt.Errorf("store: encode %s: %w", asset.Key(), err)
	}
	record := &AssetRecord{
		ID:          identity.AssetRecordUUID(asset.Type.String(), asset.ID),
		AssetType:   asset.Type.String(),
		AssetID:     asset.ID,
		DisplayName: asset.Meta.DisplayName,
		Literal:     literal,
		Revision:    revision,
	}
	if anim, ok := asset.Payload.(*assets.Animation); ok {
		record.Interval = anim.Interval
	}
	return record, nil
}

// FromRecord rebuilds a persisted asset from its row form.
func FromRecord(record *AssetRecord) (*assets.Asset, error) {
	if record == nil {
		return nil, ErrAssetRequired
	}
	t, err := assets.ParseType(record.AssetType)
	if err != nil {
		return nil, err
	}
	info, err := assets.Describe(t)
	if err != nil {
		return nil, err
	}
	payload, err := info.Decode(record.Literal)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", record.AssetID, err)
	}
	if anim, ok := payload.(*assets.Animation); ok {
		anim.Interval = record.Interval
	}
	asset, err := assets.New(t, record.AssetID, payload)
	if err != nil {
		return nil, err
	}
	asset.Meta.DisplayName = record.DisplayName
	return asset, nil
}
