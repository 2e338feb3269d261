// Package synth paints deterministic placeholder images when the remote
// generator is unavailable. Output depends only on the Spec.
package synth

import (
	"context"
	"image"
	"math/rand/v2"
	"strconv"

	"imagestudio/internal/domain"
	"imagestudio/internal/infra"
	"imagestudio/internal/palette"
	"imagestudio/internal/storage"
)

const grainAmplitude = 6

// Spec is the full input of one synthesis.
type Spec struct {
	Prompt  string
	Style   string
	Quality string
	Width   int
	Height  int
	Seed    int
}

// Saver persists encoded rasters.
type Saver interface {
	SaveImage(ctx context.Context, kind, tag string, img image.Image) (string, error)
}

type Options struct {
	Logger *infra.Logger
}

type Synthesizer struct {
	palettes *palette.Extractor
	store    Saver
	logger   *infra.Logger
}

func NewSynthesizer(palettes *palette.Extractor, store Saver, opts Options) *Synthesizer {
	if palettes == nil {
		palettes = palette.NewExtractor(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Synthesizer{palettes: palettes, store: store, logger: logger}
}

// Render paints spec into a new buffer. The same Spec always yields the same
// pixels.
func (s *Synthesizer) Render(spec Spec) (*image.RGBA, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, domain.Synthesisf("invalid canvas %dx%d", spec.Width, spec.Height)
	}
	pal := s.palettes.Extract(spec.Prompt, spec.Style)
	seed := uint64(spec.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	c := newCanvas(spec.Width, spec.Height)
	name := StrategyFor(spec.Style)
	shapes := strategies[name](c, rng, pal)
	grain(c, rng, grainAmplitude)
	drawCaption(c, captionLines(spec))

	s.logger.Debug().
		Str("strategy", name).
		Int("shapes", shapes).
		Int("colors", len(pal)).
		Strs("families", families(pal)).
		Int("seed", spec.Seed).
		Msg("synth: rendered mock image")
	return c.rgba(), nil
}

// Synthesize renders spec and writes it as a mock_<unix>_<seed> file.
func (s *Synthesizer) Synthesize(ctx context.Context, spec Spec) (string, error) {
	img, err := s.Render(spec)
	if err != nil {
		return "", err
	}
	if s.store == nil {
		return "", domain.Synthesisf("no output store configured")
	}
	path, err := s.store.SaveImage(ctx, storage.KindMock, strconv.Itoa(spec.Seed), img)
	if err != nil {
		return "", domain.Synthesisf("save mock image: %v", err)
	}
	return path, nil
}

// families names the keyword colours in pal, for logging.
func families(pal domain.Palette) []string {
	var out []string
	for _, c := range pal {
		if f := palette.Family(c); f != "" {
			out = append(out, f)
		}
	}
	return out
}
