package pet

// Danger zone geometry. A stat is dangerous within 20 points of a fatal
// edge; values at exactly 20 or 80 are still safe.
const (
	dangerLow  = 20
	dangerHigh = 80
	dangerSpan = 20.0
)

// DangerLevel returns how close the pet is to dying, 0 (safe) to 1
// (dead). Hunger and happiness are dangerous near both edges; poo only
// near the top, since an empty poo stat is just a clean pet.
func DangerLevel(s Stats) float64 {
	level := edgeDanger(s.Hunger)
	if d := edgeDanger(s.Happiness); d > level {
		level = d
	}
	if d := highDanger(s.Poo); d > level {
		level = d
	}
	return level
}

func edgeDanger(v int) float64 {
	low := float64(dangerLow-v) / dangerSpan
	if high := highDanger(v); high > low {
		return high
	}
	if low < 0 {
		return 0
	}
	return low
}

func highDanger(v int) float64 {
	h := float64(v-dangerHigh) / dangerSpan
	if h < 0 {
		return 0
	}
	return h
}

// WarningColor maps a danger level to the warning light color: dim
// amber fading up to bright amber by level 0.5, then amber to pure red
// at 1.0. Level 0 means no warning at all.
func WarningColor(level float64) (r, g, b uint8) {
	switch {
	case level <= 0:
		return 0, 0, 0
	case level >= 1:
		return 255, 0, 0
	case level < 0.5:
		t := level / 0.5
		return lerp(128, 255, t), lerp(80, 160, t), 0
	default:
		t := (level - 0.5) / 0.5
		return 255, lerp(160, 0, t), 0
	}
}

func lerp(a, b, t float64) uint8 {
	return uint8(a + (b-a)*t + 0.5)
}
