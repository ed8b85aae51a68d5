package pet

import "math/rand"

// Eye animation cadence, in foreground ticks.
const (
	blinkChance   = 40 // 1-in-N chance per tick
	blinkHold     = 5
	lookRedrawGap = 20
)

// EyeAnimator is the cosmetic blink/look state. It advances only on
// foreground ticks and never feeds back into the simulation.
type EyeAnimator struct {
	rng *rand.Rand

	blinkLeft int
	lookDir   int
	lookTicks int
}

// NewEyeAnimator creates an animator driven by the given rng.
func NewEyeAnimator(rng *rand.Rand) *EyeAnimator {
	return &EyeAnimator{rng: rng}
}

// Tick advances the animation by one foreground tick. A blink holds for
// blinkHold ticks once started; the look direction is redrawn every
// lookRedrawGap ticks and may repeat its previous value.
func (e *EyeAnimator) Tick() {
	if e.blinkLeft > 0 {
		e.blinkLeft--
	} else if e.rng.Intn(blinkChance) == 0 {
		e.blinkLeft = blinkHold
	}

	e.lookTicks++
	if e.lookTicks >= lookRedrawGap {
		e.lookTicks = 0
		e.lookDir = e.rng.Intn(3) - 1
	}
}

// Blinking reports whether the eyes are currently closed.
func (e *EyeAnimator) Blinking() bool {
	return e.blinkLeft > 0
}

// LookDirection returns -1 (left), 0 (center) or 1 (right).
func (e *EyeAnimator) LookDirection() int {
	return e.lookDir
}
