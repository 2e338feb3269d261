package prompt

import (
	"math"
	"math/rand/v2"
	"strings"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
)

// PlaceholderPrompt replaces an empty prompt.
const PlaceholderPrompt = "blank image"

// Params carries the caller-facing generation options before resolution.
type Params struct {
	Prompt         string
	Style          string
	Quality        string
	AspectRatio    string
	NegativePrompt string
	// Seed is optional; nil draws a fresh seed.
	Seed      *int
	Enhancers []string
}

type Options struct {
	Language   catalog.Language
	Translator Translator
	// SeedSource returns a seed in [1, domain.MaxSeed]. Defaults to a uniform
	// draw from math/rand/v2.
	SeedSource func() int
}

// Resolver turns Params into a canonical domain.GenerationRequest.
type Resolver struct {
	reg        *catalog.Registry
	lang       catalog.Language
	translator Translator
	seeds      func() int
}

func NewResolver(reg *catalog.Registry, opts Options) *Resolver {
	if reg == nil {
		reg = catalog.Default()
	}
	lang := opts.Language
	if lang == "" {
		lang = catalog.LanguageEnglish
	}
	tr := opts.Translator
	if tr == nil {
		tr = NewTagTranslator()
	}
	seeds := opts.SeedSource
	if seeds == nil {
		seeds = RandomSeed
	}
	return &Resolver{reg: reg, lang: lang, translator: tr, seeds: seeds}
}

// RandomSeed draws uniformly from [1, domain.MaxSeed].
func RandomSeed() int {
	return rand.IntN(domain.MaxSeed) + 1
}

func (r *Resolver) Registry() *catalog.Registry {
	return r.reg
}

func (r *Resolver) Resolve(p Params) (domain.GenerationRequest, error) {
	seed, err := r.resolveSeed(p.Seed)
	if err != nil {
		return domain.GenerationRequest{}, err
	}

	raw := strings.TrimSpace(p.Prompt)
	if raw == "" {
		raw = PlaceholderPrompt
	}

	tier := r.reg.QualityOrDefault(p.Quality)
	width, height := tier.Width, tier.Height
	ratioName := ""
	if ratio, ok := r.reg.AspectRatio(p.AspectRatio); ok {
		width, height = Dimensions(tier.Width, ratio.WidthRatio, ratio.HeightRatio)
		ratioName = ratio.Name
	}

	styleName := ""
	enhanced, applied := r.applyEnhancers(raw, p.Enhancers)
	if style, ok := r.reg.Style(p.Style); ok {
		styleName = style.Name
		if suffix := style.Suffix(r.lang); suffix != "" {
			enhanced += r.separator() + suffix
		}
	}

	return domain.GenerationRequest{
		RawPrompt:        raw,
		EnhancedPrompt:   enhanced,
		TranslatedPrompt: r.translator.Translate(enhanced),
		NegativePrompt:   strings.TrimSpace(p.NegativePrompt),
		Style:            styleName,
		Quality:          tier.Name,
		AspectRatio:      ratioName,
		Width:            width,
		Height:           height,
		Steps:            tier.Steps,
		Seed:             seed,
		Enhancers:        applied,
	}, nil
}

func (r *Resolver) resolveSeed(seed *int) (int, error) {
	if seed == nil {
		return r.seeds(), nil
	}
	if *seed < 1 || *seed > domain.MaxSeed {
		return 0, domain.Resolutionf("seed %d outside [1, %d]", *seed, domain.MaxSeed)
	}
	return *seed, nil
}

// applyEnhancers appends known enhancer suffixes in caller order. Unknown and
// repeated names are skipped.
func (r *Resolver) applyEnhancers(prompt string, names []string) (string, []string) {
	var (
		suffixes []string
		applied  []string
		seen     = make(map[string]struct{}, len(names))
	)
	for _, name := range names {
		e, ok := r.reg.Enhancer(name)
		if !ok {
			continue
		}
		if _, dup := seen[e.Name]; dup {
			continue
		}
		seen[e.Name] = struct{}{}
		suffixes = append(suffixes, e.Suffix)
		applied = append(applied, e.Name)
	}
	if len(suffixes) == 0 {
		return prompt, nil
	}
	return prompt + ", " + strings.Join(suffixes, ", "), applied
}

func (r *Resolver) separator() string {
	if r.lang == catalog.LanguageChinese {
		return "，"
	}
	return ", "
}

// Dimensions rescales a square base edge to the ratio rw:rh while keeping the
// pixel count close to base*base. Each side is floored to a multiple of 8,
// minimum 8.
func Dimensions(base, rw, rh int) (int, int) {
	if rw <= 0 || rh <= 0 {
		return snap8(float64(base)), snap8(float64(base))
	}
	p := math.Sqrt(float64(rw * rh))
	w := math.Round(float64(base) * float64(rw) / p)
	h := math.Round(float64(base) * float64(rh) / p)
	return snap8(w), snap8(h)
}

func snap8(v float64) int {
	n := int(v) / 8 * 8
	if n < 8 {
		return 8
	}
	return n
}
