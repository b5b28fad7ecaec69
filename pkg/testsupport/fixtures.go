package testsupport

import (
	"os"
	"path/filepath"
)

// LoadFixture reads name from the testdata directory of the package under
// test.
func LoadFixture(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join("testdata", name))
}
