package domain

// MaxSeed is the largest seed accepted anywhere in the pipeline (2^31 - 1).
const MaxSeed = 2147483647

// GenerationRequest is the canonical, fully resolved request shared by the
// remote and local paths of a single call.
type GenerationRequest struct {
	RawPrompt        string
	EnhancedPrompt   string
	TranslatedPrompt string
	NegativePrompt   string
	Style            string
	Quality          string
	AspectRatio      string
	Width            int
	Height           int
	Steps            int
	Seed             int
	Enhancers        []string
}

// RGB is a palette entry. Channels are always within [0,255].
type RGB struct {
	R, G, B uint8
}

// Palette is an ordered, never-empty list of colours.
type Palette []RGB

// Source reports which path produced an image.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceLocal    Source = "local"
	SourceOriginal Source = "original"
)

// GeneratedImage is the result of one gateway call.
type GeneratedImage struct {
	Path   string `json:"path"`
	Seed   int    `json:"seed"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Source Source `json:"source"`
}

// WrapSeed maps any integer into [1, MaxSeed].
func WrapSeed(seed int64) int {
	v := seed % MaxSeed
	if v <= 0 {
		v += MaxSeed
	}
	return int(v)
}
