package sim

import (
	"math/rand"
	"testing"
	"time"

	"badgagotchi/internal/pet"
	"badgagotchi/internal/store"
)

// recordingIndicator captures intent calls in order.
type recordingIndicator struct {
	calls []string
}

func (r *recordingIndicator) EnableAmbientPattern() error {
	r.calls = append(r.calls, "ambient_on")
	return nil
}

func (r *recordingIndicator) DisableAmbientPattern() error {
	r.calls = append(r.calls, "ambient_off")
	return nil
}

func (r *recordingIndicator) SetAllRGB(_, _, _ uint8) error {
	r.calls = append(r.calls, "solid")
	return nil
}

func (r *recordingIndicator) SetBreathingRed(_ uint8) error {
	r.calls = append(r.calls, "breath")
	return nil
}

func (r *recordingIndicator) last() string {
	if len(r.calls) == 0 {
		return ""
	}
	return r.calls[len(r.calls)-1]
}

type machineFixture struct {
	m       *Machine
	backend *memBackend
	ind     *recordingIndicator
	clock   *fakeClock
}

func newFixture(t *testing.T) *machineFixture {
	t.Helper()
	backend := &memBackend{}
	ind := &recordingIndicator{}
	clock := newFakeClock()
	m := NewMachine(DefaultTuning(), store.NewKeeper(backend), ind, rand.New(rand.NewSource(1)), clock.Now)
	return &machineFixture{m: m, backend: backend, ind: ind, clock: clock}
}

// start confirms through the intro screen.
func (f *machineFixture) start() {
	f.m.ForegroundTick(ActionConfirm)
}

// tickFg advances n foreground ticks with no input, moving the fake
// clock by the nominal 50ms per tick.
func (f *machineFixture) tickFg(n int) {
	for i := 0; i < n; i++ {
		f.clock.Advance(50 * time.Millisecond)
		f.m.ForegroundTick(ActionNone)
	}
}

func (f *machineFixture) tickBg(n int) {
	for i := 0; i < n; i++ {
		f.clock.Advance(50 * time.Millisecond)
		f.m.BackgroundTick()
	}
}

func TestMachineStartsOnIntro(t *testing.T) {
	f := newFixture(t)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseIntro {
		t.Fatalf("phase = %v, want intro", snap.Phase)
	}
	if snap.Status != pet.GreetingMessage {
		t.Errorf("status = %q, want greeting", snap.Status)
	}
}

func TestMachineIntroConfirmStartsLife(t *testing.T) {
	f := newFixture(t)
	f.start()
	snap := f.m.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Phase)
	}
	if snap.Hunger != 70 || snap.Happiness != 70 || snap.Poo != 0 {
		t.Errorf("starting stats %d/%d/%d, want 70/70/0", snap.Hunger, snap.Happiness, snap.Poo)
	}
	if snap.LifeID == "" {
		t.Error("life should have an id")
	}
}

func TestMachineIntroColorCycle(t *testing.T) {
	f := newFixture(t)
	f.m.ForegroundTick(ActionRight)
	if got := f.m.Snapshot().ColorIndex; got != 1 {
		t.Errorf("after right, color index = %d, want 1", got)
	}
	f.m.ForegroundTick(ActionUp)
	f.m.ForegroundTick(ActionUp)
	// 1 - 2 wraps to the end of the palette.
	want := len(pet.Palette) - 1
	if got := f.m.Snapshot().ColorIndex; got != want {
		t.Errorf("after wrap, color index = %d, want %d", got, want)
	}
	if f.backend.rec.ColorIndex != want {
		t.Errorf("color index not persisted: %+v", f.backend.rec)
	}
}

func TestMachineNoDecayBeforeThreshold(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickFg(49)
	snap := f.m.Snapshot()
	if snap.Hunger != 70 || snap.Happiness != 70 || snap.Poo != 0 {
		t.Errorf("stats moved before threshold: %d/%d/%d", snap.Hunger, snap.Happiness, snap.Poo)
	}
}

func TestMachineForegroundDecayAtThreshold(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickFg(50)
	snap := f.m.Snapshot()
	if snap.Hunger != 62 || snap.Happiness != 65 || snap.Poo != 12 {
		t.Errorf("after one decay: %d/%d/%d, want 62/65/12", snap.Hunger, snap.Happiness, snap.Poo)
	}
}

func TestMachineBackgroundDecayIsGentler(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickBg(50)
	snap := f.m.Snapshot()
	if snap.Hunger != 66 || snap.Happiness != 68 || snap.Poo != 6 {
		t.Errorf("after one bg decay: %d/%d/%d, want 66/68/6", snap.Hunger, snap.Happiness, snap.Poo)
	}
}

func TestMachineCountersAreIndependent(t *testing.T) {
	f := newFixture(t)
	f.start()
	// 49 fg ticks then 49 bg ticks: neither counter reaches the
	// threshold, so no decay at all.
	f.tickFg(49)
	f.tickBg(49)
	snap := f.m.Snapshot()
	if snap.Hunger != 70 {
		t.Errorf("hunger = %d, counters leaked between modes", snap.Hunger)
	}
}

func TestMachineFeedAction(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickFg(50) // decay once so feeding is safe: hunger 62
	f.m.ForegroundTick(ActionUp)
	snap := f.m.Snapshot()
	if snap.Hunger != 92 {
		t.Errorf("hunger = %d, want 92", snap.Hunger)
	}
	if snap.Poo != 17 {
		t.Errorf("poo = %d, want 17", snap.Poo)
	}
	if snap.Status != pet.FedMessage {
		t.Errorf("status = %q, want fed message", snap.Status)
	}
}

func TestMachineOverfeedKills(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.m.ForegroundTick(ActionUp) // 70+30 = 100, fatal
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", snap.Phase)
	}
	if snap.DeathCause != "overfed" {
		t.Errorf("cause = %q, want overfed", snap.DeathCause)
	}
}

func TestMachineOverplayKills(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.m.ForegroundTick(ActionRight) // happiness 70+30 = 100, fatal
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", snap.Phase)
	}
	if snap.DeathCause != "exhausted" {
		t.Errorf("cause = %q, want exhausted", snap.DeathCause)
	}
}

func TestMachineCleanAction(t *testing.T) {
	f := newFixture(t)
	f.start()
	// Five decay steps: poo 60, dirty enough to reward cleaning.
	f.tickFg(250)
	if got := f.m.Snapshot().Poo; got != 60 {
		t.Fatalf("poo = %d, want 60", got)
	}
	f.m.ForegroundTick(ActionConfirm)
	snap := f.m.Snapshot()
	if snap.Poo != 0 {
		t.Errorf("poo = %d, want 0", snap.Poo)
	}
	if snap.Status != pet.CleanedMessage {
		t.Errorf("status = %q, want cleaned message", snap.Status)
	}
}

func TestMachineCleanAnnoysCleanPet(t *testing.T) {
	f := newFixture(t)
	f.start()
	before := f.m.Snapshot()
	f.m.ForegroundTick(ActionConfirm)
	after := f.m.Snapshot()
	if after.Happiness != before.Happiness-5 {
		t.Errorf("happiness = %d, want %d", after.Happiness, before.Happiness-5)
	}
	if after.Status != pet.AnnoyedCleanMessage {
		t.Errorf("status = %q, want annoyed message", after.Status)
	}
}

func TestMachineNeglectKillsBySadness(t *testing.T) {
	f := newFixture(t)
	f.start()
	// Never touched: the hunger and poo cross-penalties drain happiness
	// to the floor on the eighth decay step, before hunger runs out.
	f.tickFg(50 * 12)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("neglected pet still alive: %+v", snap)
	}
	if snap.DeathCause != "too_sad" {
		t.Errorf("cause = %q, want too_sad", snap.DeathCause)
	}
	if snap.Status != pet.CauseTooSad.Message() {
		t.Errorf("status = %q, want last words", snap.Status)
	}
}

func TestMachineStarvesWithoutCrossPenalties(t *testing.T) {
	// With happiness decay and penalties unable to reach the floor
	// first, an unfed pet starves. Tune happiness decay to zero so the
	// hunger edge wins.
	tuning := DefaultTuning()
	tuning.FgHappinessDecay = 0
	tuning.FgPooGrowth = 0
	backend := &memBackend{}
	clock := newFakeClock()
	m := NewMachine(tuning, store.NewKeeper(backend), &recordingIndicator{}, rand.New(rand.NewSource(1)), clock.Now)
	m.ForegroundTick(ActionConfirm)
	for i := 0; i < 50*12; i++ {
		clock.Advance(50 * time.Millisecond)
		m.ForegroundTick(ActionNone)
	}
	snap := m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("unfed pet still alive: %+v", snap)
	}
	if snap.DeathCause != "starved" {
		t.Errorf("cause = %q, want starved", snap.DeathCause)
	}
}

func TestMachineDecayDeathEndsWarning(t *testing.T) {
	f := newFixture(t)
	f.start()
	// Neglect to death: the last decay steps run with every stat deep in
	// a danger zone, so the warning is active right up to the fatal one.
	f.tickFg(50 * 12)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("pet should be dead: %+v", snap)
	}
	if snap.Warning {
		t.Error("warning still on over a dead pet")
	}
	if snap.Danger != 0 {
		t.Errorf("danger = %v, want 0 after death", snap.Danger)
	}
	if f.ind.last() != "breath" {
		t.Errorf("last intent = %q, want breathing", f.ind.last())
	}

	// Game over drives the breathing intent and nothing else.
	seen := len(f.ind.calls)
	f.tickFg(10)
	f.tickBg(10)
	for _, call := range f.ind.calls[seen:] {
		if call != "breath" {
			t.Fatalf("intent %q issued during game over, want only breath", call)
		}
	}
}

func TestMachineBackgroundDecayDeathEndsWarning(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickBg(50 * 40)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("pet should be dead: %+v", snap)
	}
	if snap.Warning || snap.Danger != 0 {
		t.Errorf("warning=%v danger=%v after background death, want off/0", snap.Warning, snap.Danger)
	}
	if f.ind.last() != "breath" {
		t.Errorf("last intent = %q, want breathing", f.ind.last())
	}
}

func TestMachineDeathRecordsSurvivalTime(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickFg(50 * 12)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatal("pet should be dead")
	}
	if !snap.NewRecord {
		t.Error("first death should set the first record")
	}
	if f.backend.rec.BestSeconds <= 0 {
		t.Errorf("best seconds not persisted: %+v", f.backend.rec)
	}
}

func TestMachineGameOverTicksDoNotDoubleRecord(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.tickFg(50 * 12)
	best := f.backend.rec.BestSeconds
	saves := f.backend.saves
	f.tickFg(100)
	if f.backend.rec.BestSeconds != best || f.backend.saves != saves {
		t.Error("game-over ticks must not touch the record")
	}
}

func TestMachineBreathingRamp(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.m.ForegroundTick(ActionUp) // overfeed, dead
	if f.m.Snapshot().Phase != PhaseGameOver {
		t.Fatal("pet should be dead")
	}

	// 51 steps of +5 reach 255, then the ramp reverses.
	f.tickFg(51)
	if f.m.breath != 255 {
		t.Errorf("breath = %d after ramp up, want 255", f.m.breath)
	}
	f.tickFg(1)
	if f.m.breath != 250 {
		t.Errorf("breath = %d after reversal, want 250", f.m.breath)
	}
	f.tickFg(50)
	if f.m.breath != 0 {
		t.Errorf("breath = %d after ramp down, want 0", f.m.breath)
	}
	if f.ind.last() != "breath" {
		t.Errorf("last intent = %q, want breath", f.ind.last())
	}
}

func TestMachineRestartAfterDeath(t *testing.T) {
	f := newFixture(t)
	f.start()
	firstLife := f.m.Snapshot().LifeID
	f.m.ForegroundTick(ActionUp) // overfeed
	f.clock.Advance(time.Hour)
	f.m.ForegroundTick(ActionConfirm) // restart

	snap := f.m.Snapshot()
	if snap.Phase != PhasePlaying {
		t.Fatalf("phase = %v, want playing", snap.Phase)
	}
	if snap.Hunger != 70 || snap.Happiness != 70 || snap.Poo != 0 {
		t.Errorf("restart stats %d/%d/%d, want 70/70/0", snap.Hunger, snap.Happiness, snap.Poo)
	}
	if snap.LifeID == firstLife {
		t.Error("restart should mint a new life id")
	}
	if snap.Status != pet.GreetingMessage {
		t.Errorf("status = %q, want greeting", snap.Status)
	}
	if snap.DeathCause != "" {
		t.Errorf("death cause should clear, got %q", snap.DeathCause)
	}
	// The hour spent dead must not count toward the new life.
	if snap.TimeAlive != "0s" {
		t.Errorf("time alive = %q, want 0s", snap.TimeAlive)
	}
}

func TestMachineWarningLifecycle(t *testing.T) {
	f := newFixture(t)
	f.start()
	// Two decay steps: hunger 54, poo 24, happiness 60: all safe.
	f.tickFg(100)
	if f.m.Snapshot().Warning {
		t.Fatal("warning on while safe")
	}

	// Put only hunger in the danger zone and let an action refresh the
	// signal: cleaning touches neither hunger nor the safe stats' zones.
	f.m.stats = pet.Stats{Hunger: 15, Happiness: 60, Poo: 10}
	f.m.ForegroundTick(ActionConfirm)
	snap := f.m.Snapshot()
	if !snap.Warning {
		t.Fatalf("warning off in danger zone: %+v", snap)
	}
	if snap.Danger <= 0 {
		t.Errorf("danger = %v, want > 0", snap.Danger)
	}
	if f.ind.last() != "solid" {
		t.Errorf("last intent = %q, want solid warning color", f.ind.last())
	}

	// Feeding brings hunger back to safety; the action-time danger
	// refresh must end the warning immediately.
	f.m.ForegroundTick(ActionUp)
	snap = f.m.Snapshot()
	if snap.Warning {
		t.Errorf("warning still on after rescue: %+v", snap)
	}
	if f.ind.last() != "ambient_on" {
		t.Errorf("last intent = %q, want ambient restored", f.ind.last())
	}
}

func TestMachineCancelWhilePlayingMinimizes(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.m.ForegroundTick(ActionCancel)
	if got := f.m.TakeExitRequest(); got != ExitMinimize {
		t.Fatalf("exit = %v, want minimize", got)
	}
	// The pet is still alive and ticking.
	if f.m.Snapshot().Phase != PhasePlaying {
		t.Error("minimize must not end the life")
	}
	// The request is consumed.
	if got := f.m.TakeExitRequest(); got != ExitNone {
		t.Errorf("second take = %v, want none", got)
	}
}

func TestMachineCancelOnIntroCloses(t *testing.T) {
	f := newFixture(t)
	f.m.ForegroundTick(ActionCancel)
	if got := f.m.TakeExitRequest(); got != ExitClose {
		t.Fatalf("exit = %v, want close", got)
	}
	if f.m.Snapshot().Phase != PhaseExited {
		t.Error("close should move to exited")
	}
	// Exited is terminal: further ticks are no-ops.
	f.tickFg(10)
	if f.m.Snapshot().Phase != PhaseExited {
		t.Error("exited is terminal")
	}
}

func TestMachineCancelOnGameOverCloses(t *testing.T) {
	f := newFixture(t)
	f.start()
	f.m.ForegroundTick(ActionUp) // overfeed
	f.m.ForegroundTick(ActionCancel)
	if got := f.m.TakeExitRequest(); got != ExitClose {
		t.Fatalf("exit = %v, want close", got)
	}
	if f.ind.last() != "ambient_on" {
		t.Errorf("last intent = %q, breathing should end with ambient restored", f.ind.last())
	}
}

func TestMachineBackgroundDeathSurfacesOnSnapshot(t *testing.T) {
	f := newFixture(t)
	f.start()
	// Neglected in a pocket: background decay eventually kills.
	f.tickBg(50 * 40)
	snap := f.m.Snapshot()
	if snap.Phase != PhaseGameOver {
		t.Fatalf("pet survived neglect: %+v", snap)
	}
	if snap.DeathCause == "" {
		t.Error("death cause missing from snapshot")
	}
}

func TestMachineSnapshotIsDetached(t *testing.T) {
	f := newFixture(t)
	f.start()
	snap := f.m.Snapshot()
	snap.Hunger = 1
	if f.m.Snapshot().Hunger == 1 {
		t.Error("snapshot mutation leaked into the machine")
	}
}
