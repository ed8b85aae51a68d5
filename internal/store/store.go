// Package store persists the tiny bit of state that outlives a life:
// the best survival time and the chosen body color.
package store

// Record is the persisted state.
type Record struct {
	BestSeconds float64 `json:"best_seconds"`
	ColorIndex  int     `json:"color_index"`
}

// Backend loads and saves the record. Implementations treat a missing
// record as "no record yet" rather than an error; only unreadable or
// corrupt data is reported.
type Backend interface {
	Load() (Record, error)
	Save(Record) error
}
