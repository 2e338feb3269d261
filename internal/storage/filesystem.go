package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"imagestudio/internal/domain"
)

// Kinds of persisted image, used as the file name prefix.
const (
	KindRemote    = "gen"
	KindMock      = "mock"
	KindVariation = "var"
)

// maxCollisions bounds the numeric suffixes tried when a name is taken.
const maxCollisions = 1000

var unsafeTagChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type Options struct {
	Format  Format
	Quality int
	// Now overrides the clock used for file names.
	Now func() time.Time
}

// FileStore writes one file per generation into a flat output directory.
// Files are never removed by the store.
type FileStore struct {
	basePath string
	format   Format
	quality  int
	now      func() time.Time
}

// NewFileStore initializes a FileStore rooted at basePath, creating it when
// absent.
func NewFileStore(basePath string, opts Options) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	format := opts.Format
	if format == "" {
		format = FormatPNG
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &FileStore{basePath: basePath, format: format, quality: opts.Quality, now: now}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FileStore) Format() Format {
	return s.format
}

// SaveImage encodes img in the store's format and writes it as
// <kind>_<unix>_<tag>.<ext>. It returns the full path.
func (s *FileStore) SaveImage(ctx context.Context, kind, tag string, img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("storage: image is required")
	}
	buf := &bytes.Buffer{}
	if err := Encode(buf, img, s.format, s.quality); err != nil {
		return "", fmt.Errorf("storage: encode %s: %w", s.format, err)
	}
	return s.SaveEncoded(ctx, kind, tag, s.format.Ext(), buf.Bytes())
}

// SaveEncoded writes already encoded bytes under the same naming scheme.
func (s *FileStore) SaveEncoded(ctx context.Context, kind, tag, ext string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kind = cleanTag(kind)
	if kind == "" {
		return "", errors.New("storage: kind is required")
	}
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if ext == "" {
		ext = s.format.Ext()
	}
	stem := kind + "_" + strconv.FormatInt(s.now().Unix(), 10)
	if tag = cleanTag(tag); tag != "" {
		stem += "_" + tag
	}
	return s.writeUnique(stem, ext, data)
}

// writeUnique creates stem.ext exclusively, adding _1, _2, ... on collision.
func (s *FileStore) writeUnique(stem, ext string, data []byte) (string, error) {
	for i := 0; i < maxCollisions; i++ {
		name := stem + "." + ext
		if i > 0 {
			name = stem + "_" + strconv.Itoa(i) + "." + ext
		}
		full := filepath.Join(s.basePath, name)
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("storage: create file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(full)
			return "", fmt.Errorf("storage: write file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("storage: close file: %w", err)
		}
		return full, nil
	}
	return "", fmt.Errorf("storage: no free name for %s.%s", stem, ext)
}

// Resolve maps a bare file name to its path inside the store. Names that
// escape the root or contain directories are rejected.
func (s *FileStore) Resolve(name string) (string, error) {
	clean, err := sanitizeKey(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrResolution, err)
	}
	if strings.Contains(clean, "/") {
		return "", domain.Resolutionf("storage: nested path %q", name)
	}
	full := filepath.Join(s.basePath, clean)
	info, err := os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("storage: %s: %w", clean, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("storage: stat: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("storage: %s: %w", clean, domain.ErrNotFound)
	}
	return full, nil
}

// TagFromPath derives a file name tag from a source path: the base name
// without extension.
func TagFromPath(path string) string {
	base := filepath.Base(path)
	return cleanTag(strings.TrimSuffix(base, filepath.Ext(base)))
}

func cleanTag(v string) string {
	v = unsafeTagChars.ReplaceAllString(strings.TrimSpace(v), "-")
	return strings.Trim(v, "-")
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := filepath.ToSlash(filepath.Clean(key))
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
