package sim

import "log/slog"

// Indicator receives the light intents: the ambient idle pattern, the
// solid warning color, and the game-over breathing red. Implementations
// drive hardware or a UI. Every call is best-effort; the machine logs
// and drops failures so a broken light can never stall a tick.
type Indicator interface {
	EnableAmbientPattern() error
	DisableAmbientPattern() error
	SetAllRGB(r, g, b uint8) error
	SetBreathingRed(brightness uint8) error
}

// LogIndicator is the fallback Indicator: it traces intents to the
// structured log and always succeeds.
type LogIndicator struct{}

func (LogIndicator) EnableAmbientPattern() error {
	slog.Debug("indicator: ambient pattern on")
	return nil
}

func (LogIndicator) DisableAmbientPattern() error {
	slog.Debug("indicator: ambient pattern off")
	return nil
}

func (LogIndicator) SetAllRGB(r, g, b uint8) error {
	slog.Debug("indicator: solid color", "r", r, "g", g, "b", b)
	return nil
}

func (LogIndicator) SetBreathingRed(brightness uint8) error {
	slog.Debug("indicator: breathing red", "brightness", brightness)
	return nil
}
