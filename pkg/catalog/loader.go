package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFS walks fsys and merges every catalog definition file it finds, in
// lexical path order, into a single Catalog. Names must be unique across files.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: nil filesystem")
	}

	var merged Definition
	found := 0
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		def, err := Parse(data, path)
		if err != nil {
			return err
		}
		merged.ProjectTypes = append(merged.ProjectTypes, def.ProjectTypes...)
		merged.TechStacks = append(merged.TechStacks, def.TechStacks...)
		found++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == 0 {
		return nil, fmt.Errorf("catalog: no definition files found")
	}

	return New(merged)
}

// LoadFile loads a single catalog file, or every catalog file under path when
// it names a directory.
func LoadFile(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	def, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	return New(def)
}

// Parse decodes a definition, choosing the format from the source extension.
func Parse(data []byte, source string) (Definition, error) {
	var def Definition
	if len(strings.TrimSpace(string(data))) == 0 {
		return def, fmt.Errorf("catalog: file %s is empty", source)
	}

	var err error
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		err = json.Unmarshal(data, &def)
	case ".toml":
		err = toml.Unmarshal(data, &def)
	default:
		err = yaml.Unmarshal(data, &def)
	}
	if err != nil {
		return Definition{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return def, nil
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	default:
		return false
	}
}
