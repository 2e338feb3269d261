package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		body, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		out[f.Name] = string(body)
	}
	return out
}

func TestArchiveFilesDuplicateNames(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i, body := range []string{"one", "two"} {
		dir := filepath.Join(root, string(rune('a'+i)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, "a.png")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	var buf bytes.Buffer
	if err := ArchiveFiles(&buf, paths); err != nil {
		t.Fatalf("ArchiveFiles: %v", err)
	}
	got := readArchive(t, buf.Bytes())
	want := map[string]string{"a.png": "one", "a_1.png": "two"}
	if len(got) != len(want) {
		t.Fatalf("entries = %v", got)
	}
	for name, body := range want {
		if got[name] != body {
			t.Fatalf("%s = %q, want %q", name, got[name], body)
		}
	}
}

func TestArchiveFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "mock_1_42.png")
	second := filepath.Join(dir, "mock_1_43.png")
	if err := os.WriteFile(first, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ArchiveFiles(&buf, []string{first, second}); err != nil {
		t.Fatalf("ArchiveFiles: %v", err)
	}
	got := readArchive(t, buf.Bytes())
	if got["mock_1_42.png"] != "first" || got["mock_1_43.png"] != "second" {
		t.Fatalf("entries = %v", got)
	}
}

func TestArchiveFilesMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := ArchiveFiles(&buf, []string{filepath.Join(t.TempDir(), "nope.png")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
