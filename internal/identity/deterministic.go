package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const assetRecordNamespace = "go-assetfield:asset"

// AssetRecordKey is the stable key a persisted asset row is derived from:
// namespace, lower-cased asset type and asset id.
func AssetRecordKey(assetType, assetID string) string {
	return strings.Join([]string{
		assetRecordNamespace,
		strings.ToLower(strings.TrimSpace(assetType)),
		strings.TrimSpace(assetID),
	}, ":")
}

// AssetRecordUUID is the row id for a persisted asset of the given type.
// Saving the same asset twice addresses the same row.
func AssetRecordUUID(assetType, assetID string) uuid.UUID {
	return UUID(AssetRecordKey(assetType, assetID))
}

// UUID hashes key with go-hashid. A blank key yields uuid.Nil.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}
