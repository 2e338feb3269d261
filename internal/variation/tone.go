package variation

import (
	"image"
	"math"
	"math/rand/v2"
)

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}

func luma(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// addNoise adds zero-mean Gaussian noise to every colour channel.
func addNoise(img *image.NRGBA, rng *rand.Rand, sigma float64) {
	if sigma <= 0 {
		return
	}
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			pix[i+c] = clamp(float64(pix[i+c]) + rng.NormFloat64()*sigma)
		}
	}
}

func brightness(img *image.NRGBA, f float64) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			pix[i+c] = clamp(float64(pix[i+c]) * f)
		}
	}
}

// contrast stretches every channel around the mean luminance.
func contrast(img *image.NRGBA, f float64) {
	pix := img.Pix
	n := len(pix) / 4
	if n == 0 {
		return
	}
	var sum float64
	for i := 0; i+3 < len(pix); i += 4 {
		sum += luma(pix[i], pix[i+1], pix[i+2])
	}
	mean := math.Round(sum / float64(n))
	for i := 0; i+3 < len(pix); i += 4 {
		for c := 0; c < 3; c++ {
			pix[i+c] = clamp(mean + (float64(pix[i+c])-mean)*f)
		}
	}
}

// saturation moves every pixel away from or towards its own grey level.
func saturation(img *image.NRGBA, f float64) {
	pix := img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		grey := luma(pix[i], pix[i+1], pix[i+2])
		for c := 0; c < 3; c++ {
			pix[i+c] = clamp(grey + (float64(pix[i+c])-grey)*f)
		}
	}
}
