package catalog

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed data/*
var embeddedData embed.FS

// EmbeddedFS returns the bundled catalog definition.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return c
})

// Default returns the catalog shipped with the module. The value is shared and
// immutable.
func Default() *Catalog {
	return defaultCatalog()
}
