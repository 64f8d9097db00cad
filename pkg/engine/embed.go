package engine

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed templates
var embeddedTemplates embed.FS

// TemplatesFS returns the built-in template bundle, manifest included.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

var builtinManifest = sync.OnceValue(func() Manifest {
	data, err := fs.ReadFile(TemplatesFS(), ManifestFile)
	if err != nil {
		panic(err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		panic(err)
	}
	return m
})

// BuiltinManifest returns the manifest shipped with the embedded templates.
func BuiltinManifest() Manifest {
	m := builtinManifest()
	return Manifest{Documents: append([]Document(nil), m.Documents...)}
}
