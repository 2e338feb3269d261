// Package variation perturbs an existing image with seeded noise and tone
// drift.
package variation

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"imagestudio/internal/infra"
	"imagestudio/internal/storage"
)

// DefaultMaxSide bounds the longer edge of any source before processing.
const DefaultMaxSide = 1024

// noiseSigma is the noise standard deviation at strength 1.
const noiseSigma = 30.0

// band is the range a tone factor is drawn from at strength 1.
type band struct{ lo, hi float64 }

var (
	brightnessBand = band{0.8, 1.2}
	contrastBand   = band{0.9, 1.3}
	saturationBand = band{0.9, 1.4}
)

// Saver persists encoded rasters.
type Saver interface {
	SaveImage(ctx context.Context, kind, tag string, img image.Image) (string, error)
}

type Options struct {
	MaxSide int
	Logger  *infra.Logger
}

type Varier struct {
	store   Saver
	maxSide int
	logger  *infra.Logger
}

func NewVarier(store Saver, opts Options) *Varier {
	maxSide := opts.MaxSide
	if maxSide <= 0 {
		maxSide = DefaultMaxSide
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Varier{store: store, maxSide: maxSide, logger: logger}
}

// Vary writes a variation of the image at sourcePath and returns its path.
// Any failure to read, process or save returns sourcePath unchanged; the
// second result reports that degradation.
func (v *Varier) Vary(ctx context.Context, sourcePath string, strength float64, seed int) (string, error) {
	out, err := v.vary(ctx, sourcePath, strength, seed)
	if err != nil {
		v.logger.Warn().
			Err(err).
			Str("source", sourcePath).
			Float64("strength", strength).
			Msg("variation: returning source image")
		return sourcePath, err
	}
	return out, nil
}

func (v *Varier) vary(ctx context.Context, sourcePath string, strength float64, seed int) (string, error) {
	if v.store == nil {
		return "", errors.New("variation: no output store configured")
	}
	src, err := Load(sourcePath)
	if err != nil {
		return "", err
	}
	img := Apply(Fit(src, v.maxSide), strength, seed)
	return v.store.SaveImage(ctx, storage.KindVariation, storage.TagFromPath(sourcePath), img)
}

// Load decodes a PNG, JPEG, GIF or WebP file.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("variation: open source: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("variation: decode source: %w", err)
	}
	return img, nil
}

// Fit converts img to non-premultiplied NRGBA, downscaling so neither side
// exceeds maxSide while keeping the aspect ratio. Tone changes operate on
// straight colour so translucent pixels stay valid.
func Fit(img image.Image, maxSide int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			h = max(1, h*maxSide/w)
			w = maxSide
		} else {
			w = max(1, w*maxSide/h)
			h = maxSide
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Apply returns a perturbed copy of src. Strength is clamped to [0,1]; at 0
// the copy equals src.
func Apply(src *image.NRGBA, strength float64, seed int) *image.NRGBA {
	strength = min(max(strength, 0), 1)
	s := uint64(seed)
	rng := rand.New(rand.NewPCG(s, s^0x5bd1e995))

	out := image.NewNRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	if strength == 0 {
		return out
	}
	addNoise(out, rng, noiseSigma*strength)
	brightness(out, factor(rng, brightnessBand, strength))
	contrast(out, factor(rng, contrastBand, strength))
	saturation(out, factor(rng, saturationBand, strength))
	return out
}

// factor draws from b and scales its distance from 1 by strength.
func factor(rng *rand.Rand, b band, strength float64) float64 {
	f := b.lo + rng.Float64()*(b.hi-b.lo)
	return 1 + (f-1)*strength
}
