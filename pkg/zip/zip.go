package zip

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveFiles streams the named files into w, stored under their base names.
func ArchiveFiles(w io.Writer, paths []string) error {
	zw := zip.NewWriter(w)
	seen := make(map[string]int, len(paths))
	for _, path := range paths {
		if err := addFile(zw, uniqueName(seen, filepath.Base(path)), path); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addFile(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = name
	// Encoded images gain nothing from deflate.
	hdr.Method = zip.Store
	dst, err := zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("zip create %s: %w", name, err)
	}
	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("zip write %s: %w", name, err)
	}
	return nil
}

func uniqueName(seen map[string]int, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "file"
	}
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}
