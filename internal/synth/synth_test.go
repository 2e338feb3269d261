package synth

import (
	"bytes"
	"context"
	"errors"
	"image"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
	"imagestudio/internal/palette"
	"imagestudio/internal/storage"
)

func newTestSynth(t *testing.T) *Synthesizer {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir(), storage.Options{})
	require.NoError(t, err)
	return NewSynthesizer(palette.NewExtractor(catalog.Default()), store, Options{})
}

func TestRenderIsDeterministic(t *testing.T) {
	s := newTestSynth(t)
	for _, style := range []string{"realistic", "oil_painting", "anime", "pixel_art", "cyberpunk", ""} {
		t.Run(style, func(t *testing.T) {
			spec := Spec{Prompt: "a red flower on blue background", Style: style, Quality: "standard", Width: 96, Height: 64, Seed: 42}
			a, err := s.Render(spec)
			require.NoError(t, err)
			b, err := s.Render(spec)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(a.Pix, b.Pix), "renders differ for identical input")
			assert.Equal(t, image.Rect(0, 0, 96, 64), a.Bounds())
		})
	}
}

func TestRenderDependsOnSeed(t *testing.T) {
	s := newTestSynth(t)
	a, err := s.Render(Spec{Prompt: "x", Style: "anime", Width: 64, Height: 64, Seed: 1})
	require.NoError(t, err)
	b, err := s.Render(Spec{Prompt: "x", Style: "anime", Width: 64, Height: 64, Seed: 2})
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Pix, b.Pix))
}

func TestRenderRejectsInvalidCanvas(t *testing.T) {
	s := newTestSynth(t)
	for _, spec := range []Spec{{Width: 0, Height: 8}, {Width: 8, Height: -1}} {
		_, err := s.Render(spec)
		assert.True(t, errors.Is(err, domain.ErrSynthesis), "spec %+v: err = %v", spec, err)
	}
}

func TestRenderHandlesTinyCanvas(t *testing.T) {
	s := newTestSynth(t)
	for _, style := range []string{"realistic", "watercolor", "anime", "pixel_art", ""} {
		img, err := s.Render(Spec{Prompt: "tiny", Style: style, Width: 8, Height: 8, Seed: 3})
		require.NoError(t, err, style)
		assert.Equal(t, 8, img.Bounds().Dx())
	}
}

func TestStrategiesDrawBoundedShapeCounts(t *testing.T) {
	pal := domain.Palette{{R: 200, G: 50, B: 50}, {R: 50, G: 100, B: 200}}
	for name, draw := range strategies {
		for seed := uint64(1); seed <= 20; seed++ {
			c := newCanvas(40, 30)
			n := draw(c, rand.New(rand.NewPCG(seed, seed)), pal)
			assert.GreaterOrEqual(t, n, minShapes, name)
			assert.LessOrEqual(t, n, maxShapes, name)
		}
	}
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, StrategyRealistic, StrategyFor("Realistic"))
	assert.Equal(t, StrategyPainterly, StrategyFor("watercolor"))
	assert.Equal(t, StrategyPixel, StrategyFor("pixel_art"))
	assert.Equal(t, StrategyDefault, StrategyFor("cyberpunk"))
	assert.Equal(t, StrategyDefault, StrategyFor(""))
}

func TestCaptionIsAlwaysPresent(t *testing.T) {
	s := newTestSynth(t)
	spec := Spec{Prompt: "a white room", Style: "minimalism", Quality: "standard", Width: 320, Height: 200, Seed: 9}
	img, err := s.Render(spec)
	require.NoError(t, err)

	box := captionBounds(captionLines(spec))
	var bright, dark int
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			i := img.PixOffset(x, y)
			if img.Pix[i] == 255 && img.Pix[i+1] == 255 && img.Pix[i+2] == 255 {
				bright++
			} else {
				dark++
			}
		}
	}
	assert.Positive(t, bright, "caption glyphs missing")
	assert.Positive(t, dark, "caption box missing")
}

func TestCaptionLines(t *testing.T) {
	lines := captionLines(Spec{Prompt: strings.Repeat("long prompt ", 10), Style: "油画", Width: 512, Height: 512, Seed: 42})
	require.Len(t, lines, 3)
	assert.LessOrEqual(t, len([]rune(lines[0])), captionMaxRunes)
	assert.True(t, strings.HasSuffix(lines[0], "..."))
	assert.Equal(t, "style: ??", lines[1])
	assert.Contains(t, lines[2], "mock")
	assert.Contains(t, lines[2], "512x512")
}

func TestSynthesizeWritesMockFile(t *testing.T) {
	s := newTestSynth(t)
	path, err := s.Synthesize(context.Background(), Spec{Prompt: "p", Style: "realistic", Width: 32, Height: 32, Seed: 42})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "mock_"))
	assert.True(t, strings.HasSuffix(path, "_42.png"))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPolygonFill(t *testing.T) {
	c := newCanvas(10, 10)
	c.fillPolygon([]image.Point{{0, 0}, {9, 0}, {9, 9}, {0, 9}}, domain.RGB{R: 255}, 255)
	assert.Equal(t, domain.RGB{R: 255}, c.at(5, 5))
	assert.Equal(t, domain.RGB{}, c.at(9, 9), "right and bottom edges are exclusive")
}
