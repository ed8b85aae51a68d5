// Package voice gives the pet an optional AI mouth: simulation
// milestones become short in-character remarks. Everything here is
// best-effort and asynchronous; a slow or failing API never touches
// the tick loop.
package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"badgagotchi/internal/host"
	"badgagotchi/internal/sim"
)

// Config for creating a Voice.
type Config struct {
	// Claude
	ClaudeAPIKey string
	ClaudeModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Which provider to force ("claude", "gemini", or "" for auto-detect)
	Provider string

	MaxTokens  int64
	RateLimit  int
	RateWindow time.Duration
}

const generateTimeout = 15 * time.Second

// Voice turns host events into remarks, rate-limited so an unlucky pet
// doesn't burn API quota dying over and over.
type Voice struct {
	provider Provider
	limiter  *rate.Limiter
	deliver  func(remark string)
}

// New creates a Voice. Returns nil if no API key is configured; a nil
// Voice is simply not registered as a listener. deliver receives each
// finished remark (the host attaches it to snapshots).
func New(ctx context.Context, cfg Config, deliver func(remark string)) *Voice {
	provider := newProvider(ctx, cfg)
	if provider == nil {
		slog.Info("voice: no API key configured, remarks disabled")
		return nil
	}

	window := cfg.RateWindow
	if window <= 0 {
		window = time.Minute
	}
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = 6
	}

	return &Voice{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Every(window/time.Duration(limit)), limit),
		deliver:  deliver,
	}
}

// newProvider auto-detects or forces the AI provider.
func newProvider(ctx context.Context, cfg Config) Provider {
	pick := cfg.Provider

	// Auto-detect if not forced
	if pick == "" {
		switch {
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		}
	}

	switch pick {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			slog.Error("voice: AI_PROVIDER=claude but ANTHROPIC_API_KEY is not set")
			return nil
		}
		slog.Info("voice: using claude", "model", cfg.ClaudeModel)
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.MaxTokens)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Error("voice: AI_PROVIDER=gemini but GOOGLE_API_KEY is not set")
			return nil
		}
		slog.Info("voice: using gemini", "model", cfg.GeminiModel)
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("voice: failed to create gemini provider", "err", err)
			return nil
		}
		return p
	default:
		return nil
	}
}

// OnEvent implements host.EventListener. Runs on the tick goroutine, so
// it only checks the limiter and hands off.
func (v *Voice) OnEvent(event host.Event, snap sim.Snapshot) {
	if !v.limiter.Allow() {
		return
	}
	go v.speak(event, snap)
}

func (v *Voice) speak(event host.Event, snap sim.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	line, err := v.provider.Generate(ctx, systemPrompt(snap), userPrompt(event, snap))
	if err != nil {
		slog.Debug("voice: generate failed", "event", string(event), "err", err)
		return
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	v.deliver(line)
}

func systemPrompt(snap sim.Snapshot) string {
	return fmt.Sprintf(`You are a badgagotchi, a tiny needy virtual pet living on a conference badge.

## Current State
- Phase: %s
- Hunger: %d/100 (0=starving, 100=stuffed)
- Happiness: %d/100
- Poo: %d/100 (how badly the screen needs cleaning)
- Status line: %q
- Time alive: %s
- Best time ever: %s

## Guidelines
- Stay in character: dramatic, a little guilt-trippy, very attached to your owner.
- Reply with EXACTLY ONE short line (under 15 words). No quotes, no emoji spam.
- Never mention being an AI or a language model.`,
		snap.Phase, snap.Hunger, snap.Happiness, snap.Poo,
		snap.Status, snap.TimeAlive, snap.BestTime)
}

func userPrompt(event host.Event, snap sim.Snapshot) string {
	switch event {
	case host.EventLifeStarted:
		return "You just hatched. Say hello to your owner."
	case host.EventDied:
		return fmt.Sprintf("You just died (%s) after surviving %s. Deliver your last words.", snap.DeathCause, snap.TimeAlive)
	case host.EventNewRecord:
		return fmt.Sprintf("Your %s life just set a new survival record. Gloat from beyond.", snap.TimeAlive)
	default:
		return fmt.Sprintf("Your mood just changed; your status line is now %q. React to it.", snap.Status)
	}
}
