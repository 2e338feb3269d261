package synth

import (
	"image"
	"image/color"
	"sort"

	"imagestudio/internal/domain"
)

// canvas wraps an RGBA buffer with clipped, alpha-blended fills. Alpha is in
// [0,255]; 255 overwrites.
type canvas struct {
	img  *image.RGBA
	w, h int
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

func (c *canvas) fill(col domain.RGB) {
	c.fillRect(image.Rect(0, 0, c.w, c.h), col, 255)
}

func (c *canvas) blend(x, y int, col domain.RGB, a int) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h || a <= 0 {
		return
	}
	if a > 255 {
		a = 255
	}
	i := c.img.PixOffset(x, y)
	p := c.img.Pix[i : i+4 : i+4]
	inv := 255 - a
	p[0] = uint8((int(col.R)*a + int(p[0])*inv) / 255)
	p[1] = uint8((int(col.G)*a + int(p[1])*inv) / 255)
	p[2] = uint8((int(col.B)*a + int(p[2])*inv) / 255)
	p[3] = 255
}

func (c *canvas) at(x, y int) domain.RGB {
	i := c.img.PixOffset(x, y)
	return domain.RGB{R: c.img.Pix[i], G: c.img.Pix[i+1], B: c.img.Pix[i+2]}
}

// fillRect paints r clipped to the canvas.
func (c *canvas) fillRect(r image.Rectangle, col domain.RGB, a int) {
	r = r.Intersect(c.img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.blend(x, y, col, a)
		}
	}
}

// fillEllipse paints the ellipse inscribed in r. soft fades alpha towards the
// rim.
func (c *canvas) fillEllipse(r image.Rectangle, col domain.RGB, a int, soft bool) {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return
	}
	cx := float64(r.Min.X+r.Max.X) / 2
	cy := float64(r.Min.Y+r.Max.Y) / 2
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	clip := r.Intersect(c.img.Bounds())
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := clip.Min.X; x < clip.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			d := dx*dx + dy*dy
			if d > 1 {
				continue
			}
			alpha := a
			if soft {
				alpha = int(float64(a) * (1 - d))
			}
			c.blend(x, y, col, alpha)
		}
	}
}

// line draws a segment with a square pen of the given thickness.
func (c *canvas) line(p0, p1 image.Point, thickness int, col domain.RGB, a int) {
	if thickness < 1 {
		thickness = 1
	}
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	steps := max(abs(dx), abs(dy))
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		x, y := p0.X, p0.Y
		if steps > 0 {
			x += dx * i / steps
			y += dy * i / steps
		}
		c.fillRect(image.Rect(x-half, y-half, x-half+thickness, y-half+thickness), col, a)
	}
}

// fillPolygon paints a closed polygon with the even-odd rule.
func (c *canvas) fillPolygon(pts []image.Point, col domain.RGB, a int) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, 0)
	maxY = min(maxY, c.h-1)
	xs := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		sy := float64(y) + 0.5
		for i := range pts {
			a0, a1 := pts[i], pts[(i+1)%len(pts)]
			y0, y1 := float64(a0.Y), float64(a1.Y)
			if (y0 <= sy) == (y1 <= sy) {
				continue
			}
			t := (sy - y0) / (y1 - y0)
			xs = append(xs, int(float64(a0.X)+t*float64(a1.X-a0.X)+0.5))
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			c.fillRect(image.Rect(xs[i], y, xs[i+1], y+1), col, a)
		}
	}
}

func (c *canvas) rgba() *image.RGBA {
	return c.img
}

func toColor(c domain.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// mix moves c towards target by t in [0,1].
func mix(c, target domain.RGB, t float64) domain.RGB {
	lerp := func(a, b uint8) uint8 {
		return clampByte(int(float64(a) + (float64(b)-float64(a))*t + 0.5))
	}
	return domain.RGB{R: lerp(c.R, target.R), G: lerp(c.G, target.G), B: lerp(c.B, target.B)}
}

// vivid scales c so its strongest channel reaches 255.
func vivid(c domain.RGB) domain.RGB {
	peak := max(c.R, c.G, c.B)
	if peak == 0 {
		return c
	}
	f := 255.0 / float64(peak)
	return domain.RGB{
		R: clampByte(int(float64(c.R)*f + 0.5)),
		G: clampByte(int(float64(c.G)*f + 0.5)),
		B: clampByte(int(float64(c.B)*f + 0.5)),
	}
}
