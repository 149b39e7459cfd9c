package migrate

import (
	"path/filepath"

	"github.com/homeshift/homeshift/pkg/errors"
)

// Category is one named top-level data directory subject to migration.
type Category string

// Catalog is the fixed, ordered set of data directories homeshift migrates.
// The order here is the copy and verification order. The catalog is not
// user-configurable at runtime.
var Catalog = []Category{
	"Desktop",
	"Documents",
	"Downloads",
	"Movies",
	"Music",
	"Pictures",
}

// Path returns the category's directory under the given account home.
func (c Category) Path(home string) string {
	return filepath.Join(home, string(c))
}

// PresentAt reports whether the category exists as a directory under the
// given account home. Absence is a normal condition (the account simply
// never used that directory), never an error.
func (c Category) PresentAt(home string) (bool, error) {
	info, err := fs.Stat(c.Path(home))
	if err != nil {
		// Missing is the common case; other stat failures (permission
		// problems on the home itself) should surface.
		if isNotExist(err) {
			return false, nil
		}
		return false, errors.WithContext(err, "stat "+c.Path(home))
	}
	return info.IsDir(), nil
}
