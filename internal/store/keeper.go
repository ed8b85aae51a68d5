package store

import "log/slog"

// Keeper fronts a Backend with an in-memory copy of the record and
// write-through saves. A save that fails is logged and dropped: losing
// a high score must never take the simulation down with it. Not safe
// for concurrent use; the simulation owns it from a single goroutine.
type Keeper struct {
	backend Backend
	rec     Record
}

// NewKeeper loads the record from the backend. Unreadable or corrupt
// data falls back to the zero record.
func NewKeeper(backend Backend) *Keeper {
	rec, err := backend.Load()
	if err != nil {
		slog.Warn("record load failed, starting fresh", "err", err)
		rec = Record{}
	}
	return &Keeper{backend: backend, rec: rec}
}

// Record returns the current in-memory record.
func (k *Keeper) Record() Record {
	return k.rec
}

// SetBestSeconds updates the best time and saves.
func (k *Keeper) SetBestSeconds(seconds float64) {
	k.rec.BestSeconds = seconds
	k.save()
}

// SetColorIndex updates the color choice and saves.
func (k *Keeper) SetColorIndex(index int) {
	k.rec.ColorIndex = index
	k.save()
}

func (k *Keeper) save() {
	if err := k.backend.Save(k.rec); err != nil {
		slog.Warn("record save failed", "err", err)
	}
}
