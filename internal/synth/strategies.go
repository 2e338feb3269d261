package synth

import (
	"image"
	"math"
	"math/rand/v2"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
)

// Every strategy draws between minShapes and maxShapes primitives.
const (
	minShapes = 20
	maxShapes = 50
)

// strategy paints onto c and returns how many primitives it drew.
type strategy func(c *canvas, rng *rand.Rand, pal domain.Palette) int

// Strategy names reported in logs and captions.
const (
	StrategyRealistic = "realistic"
	StrategyPainterly = "painterly"
	StrategyAnime     = "anime"
	StrategyPixel     = "pixel"
	StrategyDefault   = "default"
)

var strategies = map[string]strategy{
	StrategyRealistic: drawRealistic,
	StrategyPainterly: drawPainterly,
	StrategyAnime:     drawAnime,
	StrategyPixel:     drawPixel,
	StrategyDefault:   drawMixed,
}

var styleStrategies = map[string]string{
	"realistic":     StrategyRealistic,
	"photo":         StrategyRealistic,
	"摄影":            StrategyRealistic,
	"oil_painting":  StrategyPainterly,
	"impressionism": StrategyPainterly,
	"watercolor":    StrategyPainterly,
	"anime":         StrategyAnime,
	"动漫":            StrategyAnime,
	"pixel_art":     StrategyPixel,
}

// StrategyFor names the drawing strategy used for style. Unknown styles use
// the default mixed-shape strategy.
func StrategyFor(style string) string {
	if s, ok := styleStrategies[catalog.NormalizeKey(style)]; ok {
		return s
	}
	return StrategyDefault
}

func shapeCount(rng *rand.Rand) int {
	return minShapes + rng.IntN(maxShapes-minShapes+1)
}

func pick(rng *rand.Rand, pal domain.Palette) domain.RGB {
	return pal[rng.IntN(len(pal))]
}

// randomBox returns a rectangle fully inside the canvas whose sides span
// between minFrac and maxFrac of the canvas size.
func randomBox(rng *rand.Rand, w, h int, minFrac, maxFrac float64) image.Rectangle {
	bw := span(rng, w, minFrac, maxFrac)
	bh := span(rng, h, minFrac, maxFrac)
	x := rng.IntN(w - bw + 1)
	y := rng.IntN(h - bh + 1)
	return image.Rect(x, y, x+bw, y+bh)
}

func span(rng *rand.Rand, size int, minFrac, maxFrac float64) int {
	lo := max(1, int(float64(size)*minFrac))
	hi := max(lo, int(float64(size)*maxFrac))
	return min(size, lo+rng.IntN(hi-lo+1))
}

func randomPoint(rng *rand.Rand, w, h int) image.Point {
	return image.Pt(rng.IntN(w), rng.IntN(h))
}

// drawRealistic lays a vertical gradient and then axis-aligned translucent
// panels and rules.
func drawRealistic(c *canvas, rng *rand.Rand, pal domain.Palette) int {
	top := pal[0]
	bottom := mix(top, domain.RGB{R: 255, G: 255, B: 255}, 0.45)
	for y := 0; y < c.h; y++ {
		t := 0.0
		if c.h > 1 {
			t = float64(y) / float64(c.h-1)
		}
		c.fillRect(image.Rect(0, y, c.w, y+1), mix(top, bottom, t), 255)
	}
	n := shapeCount(rng)
	for i := 0; i < n; i++ {
		col := pick(rng, pal)
		if rng.IntN(3) == 0 {
			thickness := 1 + rng.IntN(4)
			if rng.IntN(2) == 0 {
				y := rng.IntN(c.h)
				x0 := rng.IntN(c.w)
				x1 := x0 + span(rng, c.w-x0, 0.1, 1)
				c.line(image.Pt(x0, y), image.Pt(min(x1, c.w-1), y), thickness, col, 200)
			} else {
				x := rng.IntN(c.w)
				y0 := rng.IntN(c.h)
				y1 := y0 + span(rng, c.h-y0, 0.1, 1)
				c.line(image.Pt(x, y0), image.Pt(x, min(y1, c.h-1)), thickness, col, 200)
			}
			continue
		}
		c.fillRect(randomBox(rng, c.w, c.h, 0.05, 0.4), col, 80+rng.IntN(120))
	}
	return n
}

// drawPainterly layers soft overlapping ellipses on a pale ground.
func drawPainterly(c *canvas, rng *rand.Rand, pal domain.Palette) int {
	c.fill(domain.RGB{R: 240, G: 240, B: 240})
	n := shapeCount(rng)
	for i := 0; i < n; i++ {
		box := randomBox(rng, c.w, c.h, 0.1, 0.5)
		c.fillEllipse(box, pick(rng, pal), 120+rng.IntN(100), true)
	}
	return n
}

// drawAnime paints flat bands and then bright opaque polygons, rectangles
// and ellipses.
func drawAnime(c *canvas, rng *rand.Rand, pal domain.Palette) int {
	c.fill(domain.RGB{R: 250, G: 250, B: 250})
	for y := 0; y < c.h; {
		band := 10 + rng.IntN(41)
		c.fillRect(image.Rect(0, y, c.w, y+band), mix(pick(rng, pal), domain.RGB{R: 255, G: 255, B: 255}, 0.6), 255)
		y += band
	}
	n := shapeCount(rng)
	for i := 0; i < n; i++ {
		col := vivid(pick(rng, pal))
		box := randomBox(rng, c.w, c.h, 0.08, 0.35)
		switch rng.IntN(3) {
		case 0:
			c.fillPolygon(polygonIn(rng, box), col, 255)
		case 1:
			c.fillRect(box, col, 255)
		default:
			c.fillEllipse(box, col, 230, false)
		}
	}
	return n
}

// polygonIn returns 3 to 6 vertices on an ellipse inscribed in box, with
// jittered radii.
func polygonIn(rng *rand.Rand, box image.Rectangle) []image.Point {
	k := 3 + rng.IntN(4)
	cx := float64(box.Min.X+box.Max.X) / 2
	cy := float64(box.Min.Y+box.Max.Y) / 2
	rx := float64(box.Dx()) / 2
	ry := float64(box.Dy()) / 2
	offset := rng.Float64() * 2 * math.Pi
	pts := make([]image.Point, k)
	for i := range pts {
		angle := offset + float64(i)*2*math.Pi/float64(k)
		r := 0.6 + 0.4*rng.Float64()
		x := cx + r*rx*math.Cos(angle)
		y := cy + r*ry*math.Sin(angle)
		pts[i] = image.Pt(
			min(max(int(x), box.Min.X), box.Max.X-1),
			min(max(int(y), box.Min.Y), box.Max.Y-1),
		)
	}
	return pts
}

// drawPixel paints on a coarse grid and scales up with nearest-neighbour
// sampling.
func drawPixel(c *canvas, rng *rand.Rand, pal domain.Palette) int {
	cell := max(2, c.w/64)
	sw := (c.w + cell - 1) / cell
	sh := (c.h + cell - 1) / cell
	small := newCanvas(sw, sh)
	small.fill(mix(pal[0], domain.RGB{}, 0.5))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			if rng.IntN(2) == 0 {
				small.blend(x, y, pick(rng, pal), 255)
			}
		}
	}
	n := shapeCount(rng)
	for i := 0; i < n; i++ {
		small.fillRect(randomBox(rng, sw, sh, 0.03, 0.2), pick(rng, pal), 255)
	}
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			c.blend(x, y, small.at(x/cell, y/cell), 255)
		}
	}
	return n
}

// drawMixed is the fallback: opaque rectangles, ellipses and thick lines on
// light grey.
func drawMixed(c *canvas, rng *rand.Rand, pal domain.Palette) int {
	c.fill(domain.RGB{R: 220, G: 220, B: 220})
	n := shapeCount(rng)
	for i := 0; i < n; i++ {
		col := pick(rng, pal)
		switch rng.IntN(3) {
		case 0:
			c.fillRect(randomBox(rng, c.w, c.h, 0.1, 0.5), col, 255)
		case 1:
			c.fillEllipse(randomBox(rng, c.w, c.h, 0.1, 0.5), col, 255, false)
		default:
			c.line(randomPoint(rng, c.w, c.h), randomPoint(rng, c.w, c.h), 1+rng.IntN(10), col, 255)
		}
	}
	return n
}

// grain adds a small seeded luminance jitter to every pixel.
func grain(c *canvas, rng *rand.Rand, amplitude int) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		d := rng.IntN(2*amplitude+1) - amplitude
		pix[i] = clampByte(int(pix[i]) + d)
		pix[i+1] = clampByte(int(pix[i+1]) + d)
		pix[i+2] = clampByte(int(pix[i+2]) + d)
	}
}
