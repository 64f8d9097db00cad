package papercode

import (
	"github.com/paper-code/go-papercode/pkg/catalog"
)

// DefaultCatalog returns the catalog shipped with the module.
func DefaultCatalog() *catalog.Catalog {
	return catalog.Default()
}

// LoadCatalog reads a catalog definition file (YAML, JSON or TOML) or a
// directory of them.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	return catalog.LoadFile(path)
}
