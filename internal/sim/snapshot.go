package sim

import "badgagotchi/internal/pet"

// Snapshot is the read-only view handed to renderers. It is a plain
// value: frontends may hold it across ticks without locking.
type Snapshot struct {
	Phase  Phase  `json:"phase"`
	LifeID string `json:"life_id,omitempty"`

	Hunger    int    `json:"hunger"`
	Happiness int    `json:"happiness"`
	Poo       int    `json:"poo"`
	Status    string `json:"status"`

	Danger  float64 `json:"danger"`
	Warning bool    `json:"warning"`

	Color      pet.RGB `json:"color"`
	ColorIndex int     `json:"color_index"`

	EyesBlinking  bool `json:"eyes_blinking"`
	LookDirection int  `json:"look_direction"`

	TimeAlive  string `json:"time_alive,omitempty"`
	BestTime   string `json:"best_time"`
	NewRecord  bool   `json:"new_record"`
	DeathCause string `json:"death_cause,omitempty"`

	Remark string `json:"remark,omitempty"`
}
