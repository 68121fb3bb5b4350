package config

// DefaultPalette returns the named colour presets of the sprite catalog.
func DefaultPalette() map[string]string {
	return map[string]string{
		"red":    "#e74c3c",
		"blue":   "#3498db",
		"green":  "#2ecc71",
		"purple": "#9b59b6",
		"orange": "#f39c12",
		"yellow": "#f1c40f",
		"white":  "#ecf0f1",
		"black":  "#2c3e50",
		"pink":   "#fd79a8",
	}
}

// DefaultSprites returns the game's procedural catalog.
func DefaultSprites() []Sprite {
	return []Sprite{
		{Name: "ghost_standard", Kind: "ghost", Variant: "standard"},
		{Name: "ghost_baby", Kind: "ghost", Variant: "baby"},
		{Name: "ghost_rare", Kind: "ghost", Variant: "rare", Glow: true},

		{Name: "kirmizi_sapka", Kind: "beanie", Color: "red"},
		{Name: "mavi_sapka", Kind: "beanie", Color: "blue"},
		{Name: "sari_sapka", Kind: "beanie", Color: "yellow"},
		{Name: "cadi_sapkasi", Kind: "witch_hat", Color: "black", Accent: "orange"},

		{Name: "kirmizi_atki", Kind: "scarf", Color: "red"},
		{Name: "mavi_atki", Kind: "scarf", Color: "blue"},
		{Name: "yesil_atki", Kind: "scarf", Color: "green"},

		{Name: "mor_kazak", Kind: "sweater", Color: "purple"},
		{Name: "turuncu_kazak", Kind: "sweater", Color: "orange"},
		{Name: "yesil_kazak", Kind: "sweater", Color: "green"},
		{Name: "pembe_kazak", Kind: "sweater", Color: "pink"},
	}
}
