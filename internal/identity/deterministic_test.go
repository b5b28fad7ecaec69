package identity_test

import (
	"testing"

	"github.com/goliatone/go-assetfield/internal/identity"
	"github.com/google/uuid"
)

func TestAssetRecordUUIDIsStable(t *testing.T) {
	first := identity.AssetRecordUUID("image", "myImages.image1")
	second := identity.AssetRecordUUID(" Image ", "myImages.image1")
	if first == uuid.Nil {
		t.Fatalf("expected non nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
}

func TestAssetRecordUUIDSeparatesTypes(t *testing.T) {
	if identity.AssetRecordUUID("image", "x") == identity.AssetRecordUUID("tile", "x") {
		t.Fatalf("expected different uuids across asset types")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if identity.UUID("   ") != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key")
	}
}

func TestAssetRecordKeyNormalizesType(t *testing.T) {
	if got := identity.AssetRecordKey(" TILEMAP ", " level1 "); got != "go-assetfield:asset:tilemap:level1" {
		t.Fatalf("unexpected key %q", got)
	}
}
