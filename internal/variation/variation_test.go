package variation

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagestudio/internal/storage"
)

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(60 + (x*130)/max(1, w-1)),
				G: uint8(60 + (y*130)/max(1, h-1)),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func meanAbsDiff(a, b *image.NRGBA) float64 {
	var sum float64
	var n int
	for i := 0; i+3 < len(a.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			sum += math.Abs(float64(a.Pix[i+c]) - float64(b.Pix[i+c]))
			n++
		}
	}
	return sum / float64(n)
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestApplyStrengthMonotonicity(t *testing.T) {
	src := gradient(64, 64)
	still := Apply(src, 0, 7)
	assert.Less(t, meanAbsDiff(src, still), 0.5)

	moved := Apply(src, 1, 7)
	assert.Greater(t, meanAbsDiff(src, moved), 10.0)
}

func TestApplyIsSeeded(t *testing.T) {
	src := gradient(32, 32)
	assert.Equal(t, Apply(src, 0.6, 11).Pix, Apply(src, 0.6, 11).Pix)
	assert.NotEqual(t, Apply(src, 0.6, 11).Pix, Apply(src, 0.6, 12).Pix)
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := gradient(16, 16)
	before := append([]uint8(nil), src.Pix...)
	Apply(src, 1, 3)
	assert.Equal(t, before, src.Pix)
}

func TestFitCapsLongestSide(t *testing.T) {
	out := Fit(gradient(2048, 512), 1024)
	assert.Equal(t, image.Rect(0, 0, 1024, 256), out.Bounds())

	out = Fit(gradient(300, 1500), 1024)
	assert.Equal(t, image.Rect(0, 0, 204, 1024), out.Bounds())

	small := gradient(40, 30)
	assert.Equal(t, small.Pix, Fit(small, 1024).Pix)
}

func TestVaryWritesVariation(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "out"), storage.Options{})
	require.NoError(t, err)
	src := writePNG(t, dir, "photo.png", gradient(48, 48))

	path, err := NewVarier(store, Options{}).Vary(context.Background(), src, 0.5, 5)
	require.NoError(t, err)
	assert.NotEqual(t, src, path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "var_"))
	assert.True(t, strings.HasSuffix(path, "_photo.png"))
}

func TestVaryReturnsSourceOnFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir, storage.Options{})
	require.NoError(t, err)
	v := NewVarier(store, Options{})

	missing := filepath.Join(dir, "missing.png")
	path, err := v.Vary(context.Background(), missing, 0.5, 1)
	assert.Error(t, err)
	assert.Equal(t, missing, path)

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	path, err = v.Vary(context.Background(), garbage, 0.5, 1)
	assert.Error(t, err)
	assert.Equal(t, garbage, path)
}

func translucent(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.NRGBA{R: 200, G: 100, B: 50, A: 64}), image.Point{}, draw.Src)
	return img
}

func TestApplyKeepsTranslucentPixelsValid(t *testing.T) {
	src := translucent(32, 32)

	still := Apply(Fit(src, 1024), 0, 5)
	assert.Equal(t, src.Pix, still.Pix, "straight colour survives Fit unchanged")

	moved := Apply(Fit(src, 1024), 1, 5)
	for i := 3; i < len(moved.Pix); i += 4 {
		require.EqualValues(t, 64, moved.Pix[i], "alpha at byte %d", i)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, moved))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	b := moved.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			got := color.NRGBAModel.Convert(decoded.At(x, y)).(color.NRGBA)
			require.Equal(t, moved.NRGBAAt(x, y), got, "pixel %d,%d", x, y)
		}
	}
	assert.Greater(t, meanAbsDiff(src, moved), 5.0)
}
