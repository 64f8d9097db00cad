package engine

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
)

// ensureRoot creates outputRoot when missing and checks it is a directory.
func ensureRoot(outputRoot string) error {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return apperrors.OutputRootUnwritable(outputRoot, err)
	}
	info, err := os.Stat(outputRoot)
	if err != nil {
		return apperrors.OutputRootUnwritable(outputRoot, err)
	}
	if !info.IsDir() {
		return apperrors.OutputRootUnwritable(outputRoot, errors.New("not a directory"))
	}
	return nil
}

// errSymlink marks an existing path that is a symbolic link. Links belong to
// the user and are never read through or replaced in update mode.
var errSymlink = errors.New("existing path is a symbolic link")

// readExisting returns the current bytes at target. ok is false when nothing
// exists there.
func readExisting(target string) (data []byte, ok bool, err error) {
	info, err := os.Lstat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.OutputRootUnwritable(target, err)
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return nil, true, errSymlink
	}
	if !info.Mode().IsRegular() {
		return nil, false, apperrors.OutputRootUnwritable(target, errors.New("exists and is not a regular file"))
	}
	data, err = os.ReadFile(target)
	if err != nil {
		return nil, false, apperrors.OutputRootUnwritable(target, err)
	}
	return data, true, nil
}

// writeAtomic writes data to a temp file beside target and renames it into
// place, so readers never observe a half-written document.
func writeAtomic(target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.OutputRootUnwritable(dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return apperrors.OutputRootUnwritable(target, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.OutputRootUnwritable(target, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.OutputRootUnwritable(target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.OutputRootUnwritable(target, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return apperrors.OutputRootUnwritable(target, err)
	}
	return nil
}

// ListFiles returns every regular file and symbolic link under root as sorted,
// slash-separated relative paths. Links are listed, not followed.
func ListFiles(root string) ([]string, error) {
	files := []string{}
	err := fs.WalkDir(os.DirFS(root), ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.Type().IsRegular() || entry.Type()&fs.ModeSymlink != 0 {
			files = append(files, path.Clean(p))
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.OutputRootUnwritable(root, err)
	}
	sort.Strings(files)
	return files, nil
}
