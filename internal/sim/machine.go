package sim

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"badgagotchi/internal/pet"
	"badgagotchi/internal/store"
)

// Tuning holds the simulation numbers that vary by build or config.
type Tuning struct {
	// Ticks of a mode's counter between decay steps.
	TickThreshold int

	// Foreground decay per step: the pet lives faster on screen.
	FgHungerDecay    int
	FgHappinessDecay int
	FgPooGrowth      int

	// Background decay per step.
	BgHungerDecay    int
	BgHappinessDecay int
	BgPooGrowth      int

	FeedIncrement int
	PlayIncrement int
}

// DefaultTuning returns the shipped numbers: 50 ticks between decay
// steps (2.5s at the nominal 50ms tick).
func DefaultTuning() Tuning {
	return Tuning{
		TickThreshold:    50,
		FgHungerDecay:    8,
		FgHappinessDecay: 5,
		FgPooGrowth:      12,
		BgHungerDecay:    4,
		BgHappinessDecay: 2,
		BgPooGrowth:      6,
		FeedIncrement:    30,
		PlayIncrement:    30,
	}
}

// Breathing red ramp step per tick on the game-over screen.
const breathStep = 5

// Machine is the lifecycle state machine. It is single-threaded: the
// host calls exactly one of ForegroundTick/BackgroundTick per tick.
type Machine struct {
	tuning    Tuning
	keeper    *store.Keeper
	indicator Indicator
	rng       *rand.Rand
	now       func() time.Time

	phase      Phase
	stats      pet.Stats
	status     string
	cause      pet.DeathCause
	lifeID     string
	colorIndex int

	fgTicks int
	bgTicks int

	eyes  *pet.EyeAnimator
	clock *SurvivalClock

	timeAlive time.Duration
	newRecord bool

	danger  float64
	warning bool

	breath    int
	breathDir int

	exit ExitRequest
}

// NewMachine creates a machine on the intro screen. Nil indicator, rng
// and now get sensible defaults; tests inject all three.
func NewMachine(tuning Tuning, keeper *store.Keeper, indicator Indicator, rng *rand.Rand, now func() time.Time) *Machine {
	if indicator == nil {
		indicator = LogIndicator{}
	}
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(now().UnixNano()))
	}
	m := &Machine{
		tuning:     tuning,
		keeper:     keeper,
		indicator:  indicator,
		rng:        rng,
		now:        now,
		phase:      PhaseIntro,
		stats:      pet.NewStats(),
		status:     pet.GreetingMessage,
		colorIndex: keeper.Record().ColorIndex,
		eyes:       pet.NewEyeAnimator(rng),
	}
	m.indicate(indicator.EnableAmbientPattern)
	return m
}

// Phase returns the current lifecycle phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// ForegroundTick advances one tick with the UI attached, resolving at
// most one action. Decay lands first, so an action arriving on a death
// tick is resolved against the new phase.
func (m *Machine) ForegroundTick(action Action) {
	if m.phase == PhaseExited {
		return
	}

	switch m.phase {
	case PhasePlaying:
		m.fgTicks++
		if m.fgTicks >= m.tuning.TickThreshold {
			m.fgTicks = 0
			m.decay(m.tuning.FgHungerDecay, m.tuning.FgHappinessDecay, m.tuning.FgPooGrowth)
			// A fatal decay already ended the warning; only a live pet
			// gets a fresh danger reading.
			if m.phase == PhasePlaying {
				m.updateDanger()
			}
		}
		m.eyes.Tick()
	case PhaseGameOver:
		m.breathe()
	}

	m.resolveAction(action)
}

// BackgroundTick advances one tick with no UI attached. No actions are
// delivered in the background; the danger level is kept current so the
// warning light works even face-down in a pocket.
func (m *Machine) BackgroundTick() {
	if m.phase == PhaseExited {
		return
	}

	switch m.phase {
	case PhasePlaying:
		m.bgTicks++
		if m.bgTicks >= m.tuning.TickThreshold {
			m.bgTicks = 0
			m.decay(m.tuning.BgHungerDecay, m.tuning.BgHappinessDecay, m.tuning.BgPooGrowth)
		}
		if m.phase == PhasePlaying {
			m.updateDanger()
		}
	case PhaseGameOver:
		m.breathe()
	}
}

// TakeExitRequest returns and clears the pending exit request.
func (m *Machine) TakeExitRequest() ExitRequest {
	r := m.exit
	m.exit = ExitNone
	return r
}

// Snapshot builds the render view of the current state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         m.phase,
		LifeID:        m.lifeID,
		Hunger:        pet.Clamp(m.stats.Hunger),
		Happiness:     pet.Clamp(m.stats.Happiness),
		Poo:           pet.Clamp(m.stats.Poo),
		Status:        m.status,
		Danger:        m.danger,
		Warning:       m.warning,
		Color:         pet.BodyColor(m.stats, m.colorIndex),
		ColorIndex:    m.colorIndex,
		EyesBlinking:  m.eyes.Blinking(),
		LookDirection: m.eyes.LookDirection(),
		BestTime:      FormatDuration(time.Duration(m.keeper.Record().BestSeconds * float64(time.Second))),
		NewRecord:     m.newRecord,
	}
	switch m.phase {
	case PhasePlaying:
		snap.TimeAlive = FormatDuration(m.clock.Elapsed())
	case PhaseGameOver:
		snap.TimeAlive = FormatDuration(m.timeAlive)
		snap.DeathCause = m.cause.String()
	}
	return snap
}

func (m *Machine) decay(hungerDecay, happinessDecay, pooGrowth int) {
	cause := m.stats.ApplyDecay(hungerDecay, happinessDecay, pooGrowth)
	m.status = pet.StatusMessage(m.stats)
	if cause != pet.CauseNone {
		m.enterGameOver(cause)
	}
}

func (m *Machine) resolveAction(action Action) {
	if action == ActionNone {
		return
	}
	if action == ActionCancel {
		m.requestExit()
		return
	}

	switch m.phase {
	case PhaseIntro:
		m.introAction(action)
	case PhasePlaying:
		m.playingAction(action)
	case PhaseGameOver:
		if action == ActionConfirm {
			m.startLife()
		}
	}
}

func (m *Machine) introAction(action Action) {
	switch action {
	case ActionUp:
		m.cycleColor(-1)
	case ActionRight:
		m.cycleColor(1)
	case ActionConfirm:
		m.startLife()
	}
}

func (m *Machine) playingAction(action Action) {
	switch action {
	case ActionUp:
		cause := m.stats.ApplyFeed(m.tuning.FeedIncrement)
		m.status = pet.FedMessage
		m.afterAction(cause)
	case ActionRight:
		cause := m.stats.ApplyPlay(m.tuning.PlayIncrement)
		m.status = pet.PlayedMessage
		m.afterAction(cause)
	case ActionConfirm:
		if m.stats.ApplyClean() {
			m.status = pet.CleanedMessage
		} else {
			m.status = pet.AnnoyedCleanMessage
		}
		m.afterAction(pet.CauseNone)
	}
}

func (m *Machine) afterAction(cause pet.DeathCause) {
	if cause != pet.CauseNone {
		m.enterGameOver(cause)
		return
	}
	m.updateDanger()
}

func (m *Machine) cycleColor(delta int) {
	n := len(pet.Palette)
	m.colorIndex = (m.colorIndex + delta + n) % n
	m.keeper.SetColorIndex(m.colorIndex)
}

// startLife begins a fresh life from the intro or game-over screen.
func (m *Machine) startLife() {
	m.stats = pet.NewStats()
	m.fgTicks = 0
	m.bgTicks = 0
	m.cause = pet.CauseNone
	m.timeAlive = 0
	m.newRecord = false
	m.danger = 0
	m.warning = false
	m.breath = 0
	m.breathDir = 0
	m.lifeID = uuid.NewString()
	m.clock = NewSurvivalClock(m.keeper, m.now)
	m.clock.Start()
	m.eyes = pet.NewEyeAnimator(m.rng)
	m.status = pet.GreetingMessage
	m.phase = PhasePlaying
	m.indicate(m.indicator.EnableAmbientPattern)
	slog.Info("life started", "life_id", m.lifeID)
}

// enterGameOver handles death exactly once per life.
func (m *Machine) enterGameOver(cause pet.DeathCause) {
	if m.phase == PhaseGameOver {
		return
	}
	elapsed, record := m.clock.Finish()
	m.timeAlive = elapsed
	m.newRecord = record
	m.cause = cause
	m.status = cause.Message()
	m.phase = PhaseGameOver
	m.warning = false
	m.danger = 0
	m.breath = 0
	m.breathDir = breathStep
	m.indicate(m.indicator.DisableAmbientPattern)
	m.indicate(func() error { return m.indicator.SetBreathingRed(0) })
	slog.Info("game over",
		"life_id", m.lifeID,
		"cause", cause.String(),
		"time_alive", elapsed.Round(time.Second).String(),
		"new_record", record,
	)
}

// breathe ramps the game-over red 0 to 255 and back, one step per tick.
func (m *Machine) breathe() {
	m.breath += m.breathDir
	if m.breath >= 255 {
		m.breath = 255
		m.breathDir = -breathStep
	} else if m.breath <= 0 {
		m.breath = 0
		m.breathDir = breathStep
	}
	m.indicate(func() error { return m.indicator.SetBreathingRed(uint8(m.breath)) })
}

// updateDanger recomputes the danger level and drives the warning
// light. The warning begins the moment the level rises above zero and
// ends only when it is exactly zero again.
func (m *Machine) updateDanger() {
	level := pet.DangerLevel(m.stats)
	m.danger = level

	if level > 0 {
		if !m.warning {
			m.warning = true
			m.indicate(m.indicator.DisableAmbientPattern)
		}
		r, g, b := pet.WarningColor(level)
		m.indicate(func() error { return m.indicator.SetAllRGB(r, g, b) })
		return
	}
	if m.warning {
		m.warning = false
		m.indicate(m.indicator.EnableAmbientPattern)
	}
}

// requestExit handles Cancel: minimize while the pet lives, close
// otherwise. Closing restores the ambient pattern on the way out.
func (m *Machine) requestExit() {
	if m.phase == PhasePlaying {
		m.exit = ExitMinimize
		slog.Info("minimize requested", "life_id", m.lifeID)
		return
	}
	m.warning = false
	m.indicate(m.indicator.EnableAmbientPattern)
	m.exit = ExitClose
	m.phase = PhaseExited
	slog.Info("close requested")
}

// indicate runs one indicator intent, logging and dropping any failure.
func (m *Machine) indicate(f func() error) {
	if err := f(); err != nil {
		slog.Debug("indicator intent failed", "err", err)
	}
}
