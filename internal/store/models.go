package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AssetRecord is the persisted row for a named asset. Temporary assets are
// never written; they live in block literals.
type AssetRecord struct {
	bun.BaseModel `bun:"table:field_assets,alias:fa"`

	ID          uuid.UUID `bun:",pk,type:uuid" json:"id"`
	AssetType   string    `bun:"asset_type,notnull" json:"asset_type"`
	AssetID     string    `bun:"asset_id,notnull" json:"asset_id"`
	DisplayName string    `bun:"display_name,notnull" json:"display_name"`
	Literal     string    `bun:"literal,notnull" json:"literal"`
	Interval    int       `bun:"interval,notnull,default:0" json:"interval"`
	Revision    int       `bun:"revision,notnull,default:0" json:"revision"`
	CreatedAt   time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneRecord(record *AssetRecord) *AssetRecord {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
