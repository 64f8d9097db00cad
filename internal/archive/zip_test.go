package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/paper-code/go-papercode/pkg/testsupport"
)

func TestWriteZipContents(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, root, "README.md", "# Demo\n")
	testsupport.WriteFile(t, root, "docs/SETUP.md", "setup\n")
	testsupport.WriteFile(t, root, "docs/libraries/axios.md", "axios\n")

	var buf bytes.Buffer
	if err := WriteZip(&buf, root); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	got := map[string]string{}
	var order []string
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		got[f.Name] = string(data)
		order = append(order, f.Name)
	}

	want := map[string]string{
		"README.md":               "# Demo\n",
		"docs/SETUP.md":           "setup\n",
		"docs/libraries/axios.md": "axios\n",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("zip contents mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"README.md", "docs/SETUP.md", "docs/libraries/axios.md"}, order); diff != "" {
		t.Fatalf("entry order (-want +got):\n%s", diff)
	}
}

func TestWriteZipDeterministic(t *testing.T) {
	build := func() []byte {
		root := t.TempDir()
		testsupport.WriteFile(t, root, "b.md", "b")
		testsupport.WriteFile(t, root, "a/c.md", "c")
		var buf bytes.Buffer
		if err := WriteZip(&buf, root); err != nil {
			t.Fatalf("write zip: %v", err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Fatalf("identical trees produced different archives")
	}
}

func TestWriteZipMissingRoot(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteZip(&buf, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestWriteZipStoresSymlinksAsLinks(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFile(t, root, "MY.md", "mine\n")
	if err := os.Symlink("MY.md", filepath.Join(root, "README.md")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteZip(&buf, root); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(zr.File))
	}

	link := zr.File[1]
	if link.Name != "README.md" {
		t.Fatalf("unexpected entry order: %s", link.Name)
	}
	if link.Mode()&fs.ModeSymlink == 0 {
		t.Fatalf("README.md should be stored as a link, mode %v", link.Mode())
	}
	rc, err := link.Open()
	if err != nil {
		t.Fatalf("open link: %v", err)
	}
	target, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read link: %v", err)
	}
	if string(target) != "MY.md" {
		t.Fatalf("link target = %q", target)
	}
}
