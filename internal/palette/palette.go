// Package palette derives drawing colours from prompt text.
package palette

import (
	"strings"

	"golang.org/x/text/cases"

	"imagestudio/internal/catalog"
	"imagestudio/internal/domain"
)

// keyword maps every spelling of one colour to its canonical RGB value.
type keyword struct {
	tokens []string
	rgb    domain.RGB
}

// keywords is matched in order; the palette keeps that order.
var keywords = []keyword{
	{tokens: []string{"红", "red"}, rgb: domain.RGB{R: 200, G: 50, B: 50}},
	{tokens: []string{"绿", "green"}, rgb: domain.RGB{R: 50, G: 180, B: 50}},
	{tokens: []string{"蓝", "blue"}, rgb: domain.RGB{R: 50, G: 100, B: 200}},
	{tokens: []string{"黄", "yellow"}, rgb: domain.RGB{R: 230, G: 200, B: 50}},
	{tokens: []string{"紫", "purple", "violet"}, rgb: domain.RGB{R: 150, G: 50, B: 200}},
	{tokens: []string{"青", "cyan", "teal"}, rgb: domain.RGB{R: 50, G: 200, B: 200}},
	{tokens: []string{"橙", "orange"}, rgb: domain.RGB{R: 230, G: 140, B: 30}},
	{tokens: []string{"粉", "pink"}, rgb: domain.RGB{R: 230, G: 150, B: 180}},
	{tokens: []string{"棕", "brown"}, rgb: domain.RGB{R: 140, G: 80, B: 20}},
	{tokens: []string{"灰", "gray", "grey"}, rgb: domain.RGB{R: 130, G: 130, B: 130}},
	{tokens: []string{"黑", "black"}, rgb: domain.RGB{R: 30, G: 30, B: 30}},
	{tokens: []string{"白", "white"}, rgb: domain.RGB{R: 240, G: 240, B: 240}},
}

// Extractor resolves palettes against a style registry.
type Extractor struct {
	reg *catalog.Registry
}

func NewExtractor(reg *catalog.Registry) *Extractor {
	if reg == nil {
		reg = catalog.Default()
	}
	return &Extractor{reg: reg}
}

// Extract returns the colours named in prompt, in table order. With no match
// it returns the style's default palette, or neutral greys for an unknown
// style. The result is never empty.
func (e *Extractor) Extract(prompt, style string) domain.Palette {
	if out := e.Match(prompt); len(out) > 0 {
		return out
	}
	return e.reg.StylePalette(style)
}

// Match returns only the keyword colours found in prompt.
func (e *Extractor) Match(prompt string) domain.Palette {
	// Casers carry state, so each call folds with its own.
	text := cases.Fold().String(prompt)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out domain.Palette
	for _, kw := range keywords {
		for _, tok := range kw.tokens {
			if containsToken(text, tok) {
				out = append(out, kw.rgb)
				break
			}
		}
	}
	return out
}

// containsToken matches Latin tokens as whole words, so "sacred" is not red.
// Other scripts have no word spacing and match as plain substrings.
func containsToken(text, tok string) bool {
	if !isASCIIWord(tok) {
		return strings.Contains(text, tok)
	}
	for from := 0; ; {
		i := strings.Index(text[from:], tok)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(tok)
		if (start == 0 || !isASCIILetter(text[start-1])) &&
			(end == len(text) || !isASCIILetter(text[end])) {
			return true
		}
		from = start + 1
	}
}

func isASCIIWord(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return s != ""
}

func isASCIILetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// Family reports which keyword colour c belongs to, or "" when c is not a
// keyword colour.
func Family(c domain.RGB) string {
	for _, kw := range keywords {
		if kw.rgb == c {
			return kw.tokens[len(kw.tokens)-1]
		}
	}
	return ""
}
