package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
)

// TemplateExt is appended to manifest template names that omit it.
const TemplateExt = ".j2"

// source is a template filesystem paired with the manifest that drives it.
type source struct {
	fsys     fs.FS
	manifest Manifest
	label    string
	override bool
}

func templateFile(name string) string {
	if strings.HasSuffix(name, TemplateExt) {
		return name
	}
	return name + TemplateExt
}

// openDir checks that dir is an existing directory and returns it as an fs.FS.
func openDir(dir string) (fs.FS, error) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, apperrors.TemplateSourceNotFound(dir, "directory does not exist")
	case err != nil:
		return nil, apperrors.TemplateSourceNotFound(dir, err.Error())
	case !info.IsDir():
		return nil, apperrors.TemplateSourceNotFound(dir, "not a directory")
	}
	return os.DirFS(dir), nil
}

// loadSource pairs fsys with its own manifest.yaml, or with the built-in
// manifest when the source does not ship one.
func loadSource(fsys fs.FS, label string) (source, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return source{fsys: fsys, manifest: BuiltinManifest(), label: label}, nil
	case err != nil:
		return source{}, apperrors.TemplateSourceNotFound(label, fmt.Sprintf("read manifest: %v", err))
	}

	m, err := ParseManifest(data)
	if err != nil {
		return source{}, apperrors.TemplateSourceNotFound(label, err.Error())
	}
	return source{fsys: fsys, manifest: m, label: label}, nil
}

// hasTemplate reports whether the document's template exists in the source.
func (s source) hasTemplate(doc Document) bool {
	info, err := fs.Stat(s.fsys, templateFile(doc.Template))
	return err == nil && !info.IsDir()
}
