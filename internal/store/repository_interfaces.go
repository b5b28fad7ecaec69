package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// RecordRepository exposes persistence operations for asset rows.
type RecordRepository interface {
	Create(ctx context.Context, record *AssetRecord) (*AssetRecord, error)
	Update(ctx context.Context, record *AssetRecord) (*AssetRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AssetRecord, error)
	List(ctx context.Context) ([]*AssetRecord, error)
	ListByType(ctx context.Context, assetType string) ([]*AssetRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ErrRecordConflict is returned when a row with the same key already exists.
var ErrRecordConflict = errors.New("store: asset record already exists")

// NotFoundError is returned when an asset row cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
