package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Format is an output encoding for synthesized images.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// DefaultQuality applies to lossy formats when no quality is configured.
const DefaultQuality = 90

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("storage: unsupported output format %q", v)
	}
}

// Ext is the file extension without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatWebP:
		return "webp"
	default:
		return "png"
	}
}

func (f Format) MIME() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

// Encode writes img to w in format f. quality is ignored for PNG.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	switch f {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatWebP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return fmt.Errorf("storage: webp options: %w", err)
		}
		return webp.Encode(w, img, opts)
	default:
		return png.Encode(w, img)
	}
}
