// Package sim holds the lifecycle state machine that drives the pet:
// intro screen, a live pet decaying on a tick clock, and the game-over
// screen with its breathing light.
package sim

import "strings"

// Phase is the lifecycle phase.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
	PhaseExited   Phase = "exited"
)

// Action is a semantic button press. Frontends translate their own
// inputs (hardware buttons, web clicks, slash commands) into these.
type Action int

const (
	ActionNone Action = iota
	ActionUp           // feed while playing; previous color on intro
	ActionRight        // play while playing; next color on intro
	ActionConfirm      // clean / start / restart
	ActionCancel       // minimize or close
)

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionRight:
		return "right"
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	}
	return "none"
}

// ParseAction maps a frontend action name to an Action. Both the raw
// button names and the care verbs are accepted.
func ParseAction(name string) Action {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "feed":
		return ActionUp
	case "right", "play":
		return ActionRight
	case "confirm", "clean", "start":
		return ActionConfirm
	case "cancel", "exit":
		return ActionCancel
	}
	return ActionNone
}

// ExitRequest is what a Cancel press asks the host to do.
type ExitRequest int

const (
	ExitNone     ExitRequest = iota
	ExitMinimize             // keep ticking in the background
	ExitClose                // shut the daemon down
)
