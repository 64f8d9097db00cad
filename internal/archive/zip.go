// Package archive packages generated output roots for download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/paper-code/go-papercode/pkg/engine"
)

// modTime is stamped on every entry so identical trees produce identical
// archives.
var modTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteZip writes every regular file and symbolic link under root to w. Entries use slash
// separated paths relative to root and are written in sorted order.
func WriteZip(w io.Writer, root string) error {
	files, err := engine.ListFiles(root)
	if err != nil {
		return fmt.Errorf("archive: list %s: %w", root, err)
	}

	zw := zip.NewWriter(w)
	for _, rel := range files {
		if err := addFile(zw, root, rel); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive: finalize: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, root, rel string) error {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	info, err := os.Lstat(abs)
	if err != nil {
		return fmt.Errorf("archive: stat %s: %w", rel, err)
	}

	header := &zip.FileHeader{
		Name:     rel,
		Method:   zip.Deflate,
		Modified: modTime,
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return addLink(zw, header, abs)
	}
	header.SetMode(0o644)

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("archive: add %s: %w", rel, err)
	}
	src, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("archive: open %s: %w", rel, err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("archive: copy %s: %w", rel, err)
	}
	return nil
}

// addLink stores a symbolic link as a link entry whose body is the link
// target, so the archive never reaches outside root.
func addLink(zw *zip.Writer, header *zip.FileHeader, abs string) error {
	target, err := os.Readlink(abs)
	if err != nil {
		return fmt.Errorf("archive: readlink %s: %w", header.Name, err)
	}
	header.Method = zip.Store
	header.SetMode(fs.ModeSymlink | 0o777)

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("archive: add %s: %w", header.Name, err)
	}
	if _, err := io.WriteString(dst, filepath.ToSlash(target)); err != nil {
		return fmt.Errorf("archive: write link %s: %w", header.Name, err)
	}
	return nil
}
