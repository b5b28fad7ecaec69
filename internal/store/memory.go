package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRecordRepository provides an in-memory implementation of RecordRepository.
type MemoryRecordRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*AssetRecord
}

var _ RecordRepository = (*MemoryRecordRepository)(nil)

// NewMemoryRecordRepository constructs an empty memory-backed asset row repository.
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{byID: make(map[uuid.UUID]*AssetRecord)}
}

func (r *MemoryRecordRepository) Create(_ context.Context, record *AssetRecord) (*AssetRecord, error) {
	if record == nil {
		return nil, nil
	}
	cloned := cloneRecord(record)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[cloned.ID] = cloned
	return cloneRecord(cloned), nil
}

func (r *MemoryRecordRepository) Update(_ context.Context, record *AssetRecord) (*AssetRecord, error) {
	if record == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "asset", Key: record.ID.String()}
	}
	cloned := cloneRecord(record)
	r.byID[cloned.ID] = cloned
	return cloneRecord(cloned), nil
}

func (r *MemoryRecordRepository) GetByID(_ context.Context, id uuid.UUID) (*AssetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "asset", Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (r *MemoryRecordRepository) List(_ context.Context) ([]*AssetRecord, error) {
	return r.collect(func(*AssetRecord) bool { return true }), nil
}

func (r *MemoryRecordRepository) ListByType(_ context.Context, assetType string) ([]*AssetRecord, error) {
	return r.collect(func(record *AssetRecord) bool { return record.AssetType == assetType }), nil
}

func (r *MemoryRecordRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return &NotFoundError{Resource: "asset", Key: id.String()}
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRecordRepository) collect(keep func(*AssetRecord) bool) []*AssetRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*AssetRecord, 0, len(r.byID))
	for _, record := range r.byID {
		if keep(record) {
			out = append(out, cloneRecord(record))
		}
	}
	slices.SortFunc(out, func(a, b *AssetRecord) int {
		if c := strings.Compare(a.AssetType, b.AssetType); c != 0 {
			return c
		}
		return strings.Compare(a.AssetID, b.AssetID)
	})
	return out
}
