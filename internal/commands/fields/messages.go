package fieldscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	undoMessageType          = "assetfield.undo"
	redoMessageType          = "assetfield.redo"
	disposeBlockMessageType  = "assetfield.dispose_block"
	persistAssetsMessageType = "assetfield.assets.persist"
	loadAssetsMessageType    = "assetfield.assets.load"
)

// UndoCommand replays the most recent workspace event backwards, moving the
// asset store revision with it.
type UndoCommand struct{}

// Type implements command.Message.
func (UndoCommand) Type() string { return undoMessageType }

// Validate satisfies command.Message.
func (UndoCommand) Validate() error {
	return validation.ValidateStruct(&UndoCommand{})
}

// RedoCommand replays the most recently undone workspace event forwards.
type RedoCommand struct{}

// Type implements command.Message.
func (RedoCommand) Type() string { return redoMessageType }

// Validate satisfies command.Message.
func (RedoCommand) Validate() error {
	return validation.ValidateStruct(&RedoCommand{})
}

// DisposeBlockCommand tears down the asset fields of a block.
type DisposeBlockCommand struct {
	// BlockID selects the block whose fields are disposed.
	BlockID string `json:"block_id"`
	// Permanent deletes the block from the workspace first, so temporary
	// assets it solely owned are removed. Otherwise the block stays live and
	// its temporary assets are kept.
	Permanent bool `json:"permanent,omitempty"`
}

// Type implements command.Message.
func (DisposeBlockCommand) Type() string { return disposeBlockMessageType }

// Validate ensures a block id is present.
func (cmd DisposeBlockCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlockID, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("assetfield.dispose_block.block_id_required", "block id is required")
			}
			return nil
		})),
	)
}

// PersistAssetsCommand writes every persisted asset to the record repository.
type PersistAssetsCommand struct{}

// Type implements command.Message.
func (PersistAssetsCommand) Type() string { return persistAssetsMessageType }

// Validate satisfies command.Message.
func (PersistAssetsCommand) Validate() error {
	return validation.ValidateStruct(&PersistAssetsCommand{})
}

// LoadAssetsCommand registers stored asset records with the asset store.
type LoadAssetsCommand struct {
	// AssetType optionally limits the load to one asset type, such as "image".
	AssetType string `json:"asset_type,omitempty"`
}

// Type implements command.Message.
func (LoadAssetsCommand) Type() string { return loadAssetsMessageType }

// Validate rejects unknown asset types.
func (cmd LoadAssetsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.AssetType, validation.In("image", "tile", "animation", "tilemap", "song").
			Error("asset type must be one of image, tile, animation, tilemap, song")),
	)
}
