package catalog

import (
	"strings"

	"imagestudio/internal/domain"
)

// Language selects which descriptive text the registry hands out.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageChinese Language = "zh"
)

// ParseLanguage normalizes free-form input into a supported language.
func ParseLanguage(v string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "en", "english":
		return LanguageEnglish, true
	case "zh", "cn", "chinese", "中文":
		return LanguageChinese, true
	default:
		return LanguageEnglish, false
	}
}

// Style describes a visual style and the suffix appended to prompts.
type Style struct {
	Name     string
	Alias    string
	SuffixEN string
	SuffixZH string
	Palette  domain.Palette
}

// Suffix returns the descriptive suffix in the requested language.
func (s Style) Suffix(lang Language) string {
	if lang == LanguageChinese {
		return s.SuffixZH
	}
	return s.SuffixEN
}

// QualityTier fixes base dimensions and the remote sampling step count.
type QualityTier struct {
	Name   string `json:"-"`
	Alias  string `json:"alias"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Steps  int    `json:"steps"`
}

// AspectRatio re-derives width and height from a quality tier.
type AspectRatio struct {
	Name          string
	Alias         string
	WidthRatio    int
	HeightRatio   int
	DescriptionEN string
	DescriptionZH string
}

// Description returns the localized usage hint.
func (a AspectRatio) Description(lang Language) string {
	if lang == LanguageChinese {
		return a.DescriptionZH
	}
	return a.DescriptionEN
}

// Enhancer is a named prompt suffix.
type Enhancer struct {
	Name          string
	Alias         string
	Suffix        string
	DescriptionZH string
}

// Registry is the read-only option catalogue. It is built once at startup and
// shared by reference; no method mutates it.
type Registry struct {
	styles    []Style
	qualities []QualityTier
	ratios    []AspectRatio
	enhancers []Enhancer

	styleIdx    map[string]int
	qualityIdx  map[string]int
	ratioIdx    map[string]int
	enhancerIdx map[string]int

	defaultPalette domain.Palette
}

// DefaultQualityName is used whenever a quality tier cannot be resolved.
const DefaultQualityName = "standard"

// NewRegistry indexes the given tables by canonical name and alias.
func NewRegistry(styles []Style, qualities []QualityTier, ratios []AspectRatio, enhancers []Enhancer) *Registry {
	r := &Registry{
		styles:      append([]Style(nil), styles...),
		qualities:   append([]QualityTier(nil), qualities...),
		ratios:      append([]AspectRatio(nil), ratios...),
		enhancers:   append([]Enhancer(nil), enhancers...),
		styleIdx:    make(map[string]int),
		qualityIdx:  make(map[string]int),
		ratioIdx:    make(map[string]int),
		enhancerIdx: make(map[string]int),
		defaultPalette: domain.Palette{
			{R: 100, G: 100, B: 100},
			{R: 200, G: 200, B: 200},
			{R: 150, G: 150, B: 150},
		},
	}
	for i, s := range r.styles {
		index(r.styleIdx, i, s.Name, s.Alias)
	}
	for i, q := range r.qualities {
		index(r.qualityIdx, i, q.Name, q.Alias)
	}
	for i, a := range r.ratios {
		index(r.ratioIdx, i, a.Name, a.Alias)
	}
	for i, e := range r.enhancers {
		index(r.enhancerIdx, i, e.Name, e.Alias)
	}
	return r
}

func index(idx map[string]int, pos int, keys ...string) {
	for _, k := range keys {
		if k = NormalizeKey(k); k != "" {
			idx[k] = pos
		}
	}
}

// NormalizeKey folds case and separators so "Oil Painting", "oil-painting"
// and "oil_painting" resolve to the same entry.
func NormalizeKey(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, "-", "_")
	return strings.Join(strings.Fields(v), "_")
}

// Style looks up a style by name or alias.
func (r *Registry) Style(name string) (Style, bool) {
	i, ok := r.styleIdx[NormalizeKey(name)]
	if !ok {
		return Style{}, false
	}
	s := r.styles[i]
	s.Palette = append(domain.Palette(nil), s.Palette...)
	return s, true
}

// Quality looks up a tier by name or alias.
func (r *Registry) Quality(name string) (QualityTier, bool) {
	i, ok := r.qualityIdx[NormalizeKey(name)]
	if !ok {
		return QualityTier{}, false
	}
	return r.qualities[i], true
}

// QualityOrDefault resolves name, falling back to the standard tier.
func (r *Registry) QualityOrDefault(name string) QualityTier {
	if q, ok := r.Quality(name); ok {
		return q
	}
	if q, ok := r.Quality(DefaultQualityName); ok {
		return q
	}
	return QualityTier{Name: DefaultQualityName, Width: 512, Height: 512, Steps: 30}
}

// AspectRatio looks up a ratio by name or alias.
func (r *Registry) AspectRatio(name string) (AspectRatio, bool) {
	i, ok := r.ratioIdx[NormalizeKey(name)]
	if !ok {
		return AspectRatio{}, false
	}
	return r.ratios[i], true
}

// Enhancer looks up an enhancer by name or alias.
func (r *Registry) Enhancer(name string) (Enhancer, bool) {
	i, ok := r.enhancerIdx[NormalizeKey(name)]
	if !ok {
		return Enhancer{}, false
	}
	return r.enhancers[i], true
}

// StylePalette returns the default palette of a known style, or the neutral
// grey palette.
func (r *Registry) StylePalette(name string) domain.Palette {
	if s, ok := r.Style(name); ok && len(s.Palette) > 0 {
		return s.Palette
	}
	return append(domain.Palette(nil), r.defaultPalette...)
}

func (r *Registry) Styles() []Style {
	out := make([]Style, len(r.styles))
	for i, s := range r.styles {
		s.Palette = append(domain.Palette(nil), s.Palette...)
		out[i] = s
	}
	return out
}

func (r *Registry) Qualities() []QualityTier {
	return append([]QualityTier(nil), r.qualities...)
}

func (r *Registry) AspectRatios() []AspectRatio {
	return append([]AspectRatio(nil), r.ratios...)
}

func (r *Registry) Enhancers() []Enhancer {
	return append([]Enhancer(nil), r.enhancers...)
}

// StyleSuffixes lists every style as name -> suffix.
func (r *Registry) StyleSuffixes(lang Language) map[string]string {
	out := make(map[string]string, len(r.styles))
	for _, s := range r.styles {
		out[s.Name] = s.Suffix(lang)
	}
	return out
}

// QualityTiers lists every tier by name.
func (r *Registry) QualityTiers() map[string]QualityTier {
	out := make(map[string]QualityTier, len(r.qualities))
	for _, q := range r.qualities {
		out[q.Name] = q
	}
	return out
}

// RatioInfo is the listing shape of an aspect ratio.
type RatioInfo struct {
	WidthRatio  int    `json:"width_ratio"`
	HeightRatio int    `json:"height_ratio"`
	Description string `json:"description"`
}

// AspectRatioInfos lists every ratio by name.
func (r *Registry) AspectRatioInfos(lang Language) map[string]RatioInfo {
	out := make(map[string]RatioInfo, len(r.ratios))
	for _, a := range r.ratios {
		out[a.Name] = RatioInfo{WidthRatio: a.WidthRatio, HeightRatio: a.HeightRatio, Description: a.Description(lang)}
	}
	return out
}

// EnhancerSuffixes lists every enhancer as name -> suffix.
func (r *Registry) EnhancerSuffixes() map[string]string {
	out := make(map[string]string, len(r.enhancers))
	for _, e := range r.enhancers {
		out[e.Name] = e.Suffix
	}
	return out
}
