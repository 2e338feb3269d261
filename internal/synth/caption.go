package synth

import (
	"fmt"
	"image"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"imagestudio/internal/domain"
)

const (
	captionMargin   = 8
	captionPadding  = 4
	captionMaxRunes = 40
	captionBoxAlpha = 160
)

var (
	captionBox  = domain.RGB{R: 0, G: 0, B: 0}
	captionText = domain.RGB{R: 255, G: 255, B: 255}
)

// captionLines builds the three watermark lines: prompt, style, and quality
// with the mock marker and size.
func captionLines(spec Spec) []string {
	style := spec.Style
	if style == "" {
		style = "none"
	}
	quality := spec.Quality
	if quality == "" {
		quality = "custom"
	}
	return []string{
		asciiOnly(truncate(spec.Prompt, captionMaxRunes)),
		"style: " + asciiOnly(style),
		fmt.Sprintf("%s | mock | %dx%d | seed %d", asciiOnly(quality), spec.Width, spec.Height, spec.Seed),
	}
}

// drawCaption paints lines over a translucent box anchored at the top-left
// corner. Output is clipped to the canvas.
func drawCaption(c *canvas, lines []string) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	c.fillRect(captionBounds(lines), captionBox, captionBoxAlpha)

	d := &font.Drawer{Dst: c.rgba(), Src: image.NewUniform(toColor(captionText)), Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(captionMargin, captionMargin+face.Metrics().Ascent.Ceil()+i*lineHeight)
		d.DrawString(l)
	}
}

// captionBounds reports the box drawCaption covers for lines.
func captionBounds(lines []string) image.Rectangle {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	width := 0
	for _, l := range lines {
		width = max(width, d.MeasureString(l).Ceil())
	}
	return image.Rect(
		captionMargin-captionPadding,
		captionMargin-captionPadding,
		captionMargin+width+captionPadding,
		captionMargin+face.Metrics().Height.Ceil()*len(lines)+captionPadding,
	)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// asciiOnly replaces runes the bitmap face cannot draw.
func asciiOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return '?'
		}
		return r
	}, s)
}
