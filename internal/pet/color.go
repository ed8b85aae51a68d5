package pet

// RGB is an 8-bit color triple.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Palette holds the body colors selectable on the intro screen.
var Palette = []RGB{
	{R: 255, G: 128, B: 204}, // pink
	{R: 77, G: 166, B: 255},  // sky
	{R: 255, G: 200, B: 50},  // gold
	{R: 120, G: 220, B: 160}, // mint
	{R: 180, G: 130, B: 255}, // violet
}

// BodyColor picks the pet's body color. Distress overrides win over the
// chosen palette color: a filthy pet goes brown, a starving one green,
// a miserable one blue.
func BodyColor(s Stats, colorIndex int) RGB {
	switch {
	case s.Poo > 75:
		return RGB{R: 128, G: 77, B: 51}
	case s.Hunger < 15:
		return RGB{R: 51, G: 204, B: 77}
	case s.Happiness < 30:
		return RGB{R: 64, G: 128, B: 255}
	}
	if colorIndex < 0 || colorIndex >= len(Palette) {
		colorIndex = 0
	}
	return Palette[colorIndex]
}
