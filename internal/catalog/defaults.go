package catalog

import "imagestudio/internal/domain"

// Default returns the built-in catalogue.
func Default() *Registry {
	return NewRegistry(defaultStyles(), defaultQualities(), defaultRatios(), defaultEnhancers())
}

func rgb(r, g, b uint8) domain.RGB {
	return domain.RGB{R: r, G: g, B: b}
}

func defaultStyles() []Style {
	return []Style{
		{
			Name: "realistic", Alias: "写实",
			SuffixEN: "realistic style, high definition details, natural lighting",
			SuffixZH: "写实风格，高清细节，自然光效",
			Palette:  domain.Palette{rgb(100, 100, 100), rgb(150, 150, 150), rgb(200, 200, 200)},
		},
		{
			Name: "oil_painting", Alias: "油画",
			SuffixEN: "oil painting style, visible brush strokes, rich colors and texture",
			SuffixZH: "油画风格，明显的笔触，丰富的色彩和质感",
			Palette:  domain.Palette{rgb(120, 80, 40), rgb(40, 100, 160), rgb(160, 160, 80)},
		},
		{
			Name: "watercolor", Alias: "水彩",
			SuffixEN: "watercolor style, soft color transitions, light translucent washes",
			SuffixZH: "水彩画风格，柔和的色彩过渡，轻盈通透的效果",
			Palette:  domain.Palette{rgb(200, 220, 255), rgb(255, 200, 200), rgb(200, 250, 200)},
		},
		{
			Name: "illustration", Alias: "插画",
			SuffixEN: "illustration style, clean lines, bold colors, flat design",
			SuffixZH: "插画风格，简洁线条，鲜明色彩，平面化设计",
			Palette:  domain.Palette{rgb(255, 200, 100), rgb(100, 200, 255), rgb(200, 100, 255)},
		},
		{
			Name: "anime", Alias: "二次元",
			SuffixEN: "Japanese anime style, large eyes, delicate line art, vivid colors",
			SuffixZH: "日本动漫风格，大眼睛，精致的线条，鲜艳的色彩",
			Palette:  domain.Palette{rgb(255, 170, 200), rgb(170, 200, 255), rgb(170, 255, 200)},
		},
		{
			Name: "pixel_art", Alias: "像素艺术",
			SuffixEN: "retro pixel game style, blocky image elements",
			SuffixZH: "复古像素游戏风格，方块化的图像元素",
			Palette:  domain.Palette{rgb(100, 120, 200), rgb(200, 100, 100), rgb(100, 200, 100)},
		},
		{
			Name: "cyberpunk", Alias: "赛博朋克",
			SuffixEN: "cyberpunk style, futuristic, neon lights, high tech contrasted with low life",
			SuffixZH: "赛博朋克风格，未来感，霓虹灯效果，高科技与低生活的对比",
			Palette:  domain.Palette{rgb(0, 200, 255), rgb(255, 0, 150), rgb(150, 255, 0)},
		},
		{
			Name: "fantasy", Alias: "奇幻",
			SuffixEN: "fantasy style, magical elements, supernatural landscapes and creatures",
			SuffixZH: "奇幻风格，魔法元素，超自然景观和生物",
			Palette:  domain.Palette{rgb(100, 50, 200), rgb(50, 200, 100), rgb(200, 100, 50)},
		},
		{
			Name: "gothic", Alias: "哥特",
			SuffixEN: "gothic style, dark atmosphere, pointed architecture, ornate decoration",
			SuffixZH: "哥特风格，黑暗氛围，尖顶建筑，华丽装饰",
			Palette:  domain.Palette{rgb(50, 0, 100), rgb(100, 0, 50), rgb(30, 30, 50)},
		},
		{
			Name: "impressionism", Alias: "印象派",
			SuffixEN: "impressionist style, emphasis on light and color, bold visible brushwork",
			SuffixZH: "印象派风格，强调光和色彩的表现，笔触明显且色彩鲜艳",
			Palette:  domain.Palette{rgb(200, 220, 100), rgb(100, 200, 220), rgb(220, 100, 200)},
		},
		{
			Name: "minimalism", Alias: "极简主义",
			SuffixEN: "minimalist style, simple lines and shapes, limited colors",
			SuffixZH: "极简主义风格，简洁的线条和形状，有限的色彩",
			Palette:  domain.Palette{rgb(240, 240, 240), rgb(30, 30, 30), rgb(200, 200, 200)},
		},
		{
			Name: "retro", Alias: "复古",
			SuffixEN: "retro style, nostalgic tones, vintage photo effect",
			SuffixZH: "复古风格，怀旧色调，老式摄影效果",
			Palette:  domain.Palette{rgb(200, 180, 140), rgb(140, 120, 100), rgb(180, 160, 120)},
		},
		{
			Name: "steampunk", Alias: "蒸汽朋克",
			SuffixEN: "steampunk style, Victorian aesthetics combined with steam powered machinery",
			SuffixZH: "蒸汽朋克风格，维多利亚时代美学与蒸汽动力科技的结合",
			Palette:  domain.Palette{rgb(180, 140, 100), rgb(100, 80, 60), rgb(140, 100, 60)},
		},
		{
			Name: "pop_art", Alias: "波普艺术",
			SuffixEN: "pop art style, bright saturated colors, popular culture motifs",
			SuffixZH: "波普艺术风格，明亮饱和的色彩，大众流行文化元素",
			Palette:  domain.Palette{rgb(255, 50, 50), rgb(50, 50, 255), rgb(255, 255, 50)},
		},
		{
			Name: "surrealism", Alias: "超现实主义",
			SuffixEN: "surrealist style, dream blended with reality, impossible scenes",
			SuffixZH: "超现实主义风格，梦幻与现实的混合，不符合常理的场景",
			Palette:  domain.Palette{rgb(100, 200, 255), rgb(255, 100, 200), rgb(200, 255, 100)},
		},
	}
}

func defaultQualities() []QualityTier {
	return []QualityTier{
		{Name: "standard", Alias: "标准", Width: 512, Height: 512, Steps: 30},
		{Name: "hd", Alias: "高清", Width: 768, Height: 768, Steps: 40},
		{Name: "ultra", Alias: "超清", Width: 1024, Height: 1024, Steps: 50},
	}
}

func defaultRatios() []AspectRatio {
	return []AspectRatio{
		{Name: "1:1", Alias: "1:1 方形", WidthRatio: 1, HeightRatio: 1, DescriptionEN: "square compositions", DescriptionZH: "适合正方形构图"},
		{Name: "4:3", Alias: "4:3 横向", WidthRatio: 4, HeightRatio: 3, DescriptionEN: "landscapes and classic displays", DescriptionZH: "适合风景和传统显示"},
		{Name: "3:4", Alias: "3:4 纵向", WidthRatio: 3, HeightRatio: 4, DescriptionEN: "portraits and vertical scenes", DescriptionZH: "适合人像和垂直场景"},
		{Name: "16:9", Alias: "16:9 宽屏", WidthRatio: 16, HeightRatio: 9, DescriptionEN: "widescreen displays and video", DescriptionZH: "适合宽屏显示和视频"},
		{Name: "9:16", Alias: "9:16 手机", WidthRatio: 9, HeightRatio: 16, DescriptionEN: "phone screens and stories", DescriptionZH: "适合手机屏幕和故事模式"},
	}
}

func defaultEnhancers() []Enhancer {
	return []Enhancer{
		{Name: "detail", Alias: "细节增强", Suffix: "highly detailed, intricate details, fine details, sharp focus", DescriptionZH: "细节增强"},
		{Name: "lighting", Alias: "光照优化", Suffix: "perfect lighting, studio lighting, rim light, soft illumination", DescriptionZH: "光照优化"},
		{Name: "clarity", Alias: "清晰度提升", Suffix: "high resolution, 8k, ultra high definition, sharp, clear", DescriptionZH: "清晰度提升"},
		{Name: "photography", Alias: "摄影风格", Suffix: "professional photography, dslr, 85mm lens, bokeh, award winning photo", DescriptionZH: "摄影风格"},
		{Name: "color", Alias: "色彩增强", Suffix: "vibrant colors, colorful, perfect composition, vivid", DescriptionZH: "色彩增强"},
		{Name: "atmosphere", Alias: "环境氛围", Suffix: "atmospheric, golden hour, dramatic, cinematic lighting", DescriptionZH: "环境氛围"},
	}
}
