package catalog

import "testing"

func TestRegistryLookupByNameAndAlias(t *testing.T) {
	reg := Default()
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "canonical", key: "realistic", want: "realistic"},
		{name: "alias", key: "油画", want: "oil_painting"},
		{name: "mixed case with spaces", key: " Oil Painting ", want: "oil_painting"},
		{name: "hyphenated", key: "pixel-art", want: "pixel_art"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.Style(tt.key)
			if !ok {
				t.Fatalf("style %q not found", tt.key)
			}
			if got.Name != tt.want {
				t.Fatalf("style name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestRegistryUnknownStyle(t *testing.T) {
	if _, ok := Default().Style("vaporwave"); ok {
		t.Fatalf("unknown style should not resolve")
	}
}

func TestQualityOrDefault(t *testing.T) {
	reg := Default()
	if q := reg.QualityOrDefault("高清"); q.Width != 768 || q.Steps != 40 {
		t.Fatalf("hd tier = %+v", q)
	}
	if q := reg.QualityOrDefault("nope"); q.Name != DefaultQualityName || q.Width != 512 {
		t.Fatalf("fallback tier = %+v", q)
	}
}

func TestAspectRatioAlias(t *testing.T) {
	ratio, ok := Default().AspectRatio("16:9 宽屏")
	if !ok {
		t.Fatalf("alias not resolved")
	}
	if ratio.WidthRatio != 16 || ratio.HeightRatio != 9 {
		t.Fatalf("ratio = %+v", ratio)
	}
}

func TestStylePaletteIsACopy(t *testing.T) {
	reg := Default()
	p := reg.StylePalette("realistic")
	p[0].R = 1
	if again := reg.StylePalette("realistic"); again[0].R == 1 {
		t.Fatalf("registry palette mutated through returned slice")
	}
}

func TestStylePaletteDefaultsToGrey(t *testing.T) {
	p := Default().StylePalette("")
	if len(p) != 3 {
		t.Fatalf("default palette length = %d, want 3", len(p))
	}
	for _, c := range p {
		if c.R != c.G || c.G != c.B {
			t.Fatalf("default palette entry %+v is not grey", c)
		}
	}
}

func TestListingsCoverEveryEntry(t *testing.T) {
	reg := Default()
	if got := len(reg.StyleSuffixes(LanguageEnglish)); got != 15 {
		t.Fatalf("styles = %d, want 15", got)
	}
	if got := reg.StyleSuffixes(LanguageChinese)["realistic"]; got != "写实风格，高清细节，自然光效" {
		t.Fatalf("zh suffix = %q", got)
	}
	if got := len(reg.QualityTiers()); got != 3 {
		t.Fatalf("qualities = %d, want 3", got)
	}
	infos := reg.AspectRatioInfos(LanguageEnglish)
	if infos["9:16"].HeightRatio != 16 {
		t.Fatalf("9:16 info = %+v", infos["9:16"])
	}
	if got := len(reg.EnhancerSuffixes()); got != 6 {
		t.Fatalf("enhancers = %d, want 6", got)
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, ok := ParseLanguage("ZH"); !ok || lang != LanguageChinese {
		t.Fatalf("ParseLanguage(ZH) = %q, %v", lang, ok)
	}
	if _, ok := ParseLanguage("fr"); ok {
		t.Fatalf("fr should not parse")
	}
}
