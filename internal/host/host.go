// Package host owns the single thread of control: a fixed-period ticker
// drives the simulation, frontends push button presses into a small
// queue, and every tick ends with a fresh snapshot published for
// whoever wants to render it.
package host

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"badgagotchi/internal/sim"
)

// Event is a simulation milestone surfaced to listeners.
type Event string

const (
	EventLifeStarted   Event = "life_started"
	EventStatusChanged Event = "status_changed"
	EventDied          Event = "died"
	EventNewRecord     Event = "new_record"
)

// EventListener observes milestones. Calls happen on the tick goroutine
// and must not block; anything slow goes behind a goroutine.
type EventListener interface {
	OnEvent(event Event, snap sim.Snapshot)
}

// Broadcaster receives every published snapshot and reports how many
// clients are watching. A watched pet runs in foreground mode.
type Broadcaster interface {
	Broadcast(snap sim.Snapshot)
	ClientCount() int
}

const actionQueueSize = 8

// Host drives the machine. One Host per process.
type Host struct {
	machine *sim.Machine
	period  time.Duration

	actions   chan sim.Action
	snapshot  atomic.Pointer[sim.Snapshot]
	remark    atomic.Pointer[string]
	minimized atomic.Bool

	mu          sync.Mutex
	broadcaster Broadcaster
	listeners   []EventListener

	lastPhase  sim.Phase
	lastStatus string
	closed     bool
}

// New creates a host around a machine. period is the nominal tick
// length (50ms in production).
func New(machine *sim.Machine, period time.Duration) *Host {
	h := &Host{
		machine: machine,
		period:  period,
		actions: make(chan sim.Action, actionQueueSize),
	}
	snap := machine.Snapshot()
	h.snapshot.Store(&snap)
	h.lastPhase = snap.Phase
	h.lastStatus = snap.Status
	return h
}

// SetBroadcaster wires the snapshot sink. Call before Run.
func (h *Host) SetBroadcaster(b Broadcaster) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcaster = b
}

// AddListener registers an event listener. Call before Run.
func (h *Host) AddListener(l EventListener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// PushAction queues a button press. At most one action is consumed per
// foreground tick; popping is the acknowledgement. Returns false if the
// queue is full and the press was dropped. Any press wakes a minimized
// pet back to the foreground.
func (h *Host) PushAction(a sim.Action) bool {
	if a == sim.ActionNone {
		return false
	}
	h.minimized.Store(false)
	select {
	case h.actions <- a:
		return true
	default:
		slog.Debug("action queue full, dropping", "action", a.String())
		return false
	}
}

// Wake brings a minimized pet back to the foreground.
func (h *Host) Wake() {
	h.minimized.Store(false)
}

// Snapshot returns the most recently published snapshot.
func (h *Host) Snapshot() sim.Snapshot {
	return *h.snapshot.Load()
}

// SetRemark attaches the latest voice remark to future snapshots.
func (h *Host) SetRemark(remark string) {
	h.remark.Store(&remark)
}

// Run ticks until the context ends or the machine requests a close.
func (h *Host) Run(ctx context.Context) error {
	slog.Info("host running", "tick_period", h.period.String())
	ticker := time.NewTicker(h.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.step()
			if h.closed {
				slog.Info("host stopped on close request")
				return nil
			}
		}
	}
}

// step runs exactly one tick.
func (h *Host) step() {
	if h.foreground() {
		h.machine.ForegroundTick(h.popAction())
	} else {
		h.machine.BackgroundTick()
	}

	switch h.machine.TakeExitRequest() {
	case sim.ExitMinimize:
		h.minimized.Store(true)
		slog.Info("minimized, ticking continues in background")
	case sim.ExitClose:
		h.closed = true
	}

	snap := h.machine.Snapshot()
	if r := h.remark.Load(); r != nil {
		snap.Remark = *r
	}
	h.emitEvents(snap)
	h.publish(snap)
}

// foreground reports whether this tick runs with the UI attached:
// not minimized, and either someone is watching or a press is waiting.
func (h *Host) foreground() bool {
	if h.minimized.Load() {
		return false
	}
	if len(h.actions) > 0 {
		return true
	}
	h.mu.Lock()
	b := h.broadcaster
	h.mu.Unlock()
	return b != nil && b.ClientCount() > 0
}

func (h *Host) popAction() sim.Action {
	select {
	case a := <-h.actions:
		return a
	default:
		return sim.ActionNone
	}
}

func (h *Host) emitEvents(snap sim.Snapshot) {
	if snap.Phase != h.lastPhase {
		switch snap.Phase {
		case sim.PhasePlaying:
			h.fire(EventLifeStarted, snap)
		case sim.PhaseGameOver:
			h.fire(EventDied, snap)
			if snap.NewRecord {
				h.fire(EventNewRecord, snap)
			}
		}
		h.lastPhase = snap.Phase
	}
	if snap.Status != h.lastStatus {
		h.fire(EventStatusChanged, snap)
		h.lastStatus = snap.Status
	}
}

func (h *Host) fire(event Event, snap sim.Snapshot) {
	h.mu.Lock()
	listeners := h.listeners
	h.mu.Unlock()
	for _, l := range listeners {
		l.OnEvent(event, snap)
	}
}

func (h *Host) publish(snap sim.Snapshot) {
	h.snapshot.Store(&snap)
	h.mu.Lock()
	b := h.broadcaster
	h.mu.Unlock()
	if b != nil {
		b.Broadcast(snap)
	}
}
