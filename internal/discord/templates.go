package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"badgagotchi/internal/sim"
)

const (
	colorHealthy = 0x57F287 // green
	colorWarning = 0xFEE75C // yellow
	colorDanger  = 0xED4245 // red
	colorDead    = 0x95A5A6 // grey
)

// progressBar renders a value 0-100 as a 10-segment text bar.
func progressBar(value int) string {
	filled := value / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// StatusEmbed builds the /status reply from a snapshot.
func StatusEmbed(snap sim.Snapshot) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "\U0001F423 Badgagotchi",
		Color: embedColor(snap),
	}

	switch snap.Phase {
	case sim.PhaseIntro:
		embed.Description = "Waiting to hatch. Use /start to begin a life."
		return embed
	case sim.PhaseGameOver:
		embed.Title = "\U0001F480 Badgagotchi"
		embed.Description = fmt.Sprintf("%s\n\nSurvived **%s** (cause: %s). Use /start to try again.",
			snap.Status, snap.TimeAlive, snap.DeathCause)
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "Best: " + snap.BestTime,
		}
		return embed
	}

	stats := fmt.Sprintf("```\nHunger    %s %3d\nHappiness %s %3d\nPoo       %s %3d\n```",
		progressBar(snap.Hunger), snap.Hunger,
		progressBar(snap.Happiness), snap.Happiness,
		progressBar(snap.Poo), snap.Poo)

	embed.Description = snap.Status
	if snap.Remark != "" {
		embed.Description += "\n\n> " + snap.Remark
	}
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Stats", Value: stats},
	}
	if snap.Warning {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "⚠️ Warning",
			Value: fmt.Sprintf("A stat is in the danger zone (%.0f%%).", snap.Danger*100),
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Alive: %s | Best: %s", snap.TimeAlive, snap.BestTime),
	}
	return embed
}

func embedColor(snap sim.Snapshot) int {
	switch {
	case snap.Phase == sim.PhaseGameOver:
		return colorDead
	case snap.Danger >= 0.5:
		return colorDanger
	case snap.Warning:
		return colorWarning
	default:
		return colorHealthy
	}
}

// TemplateActionResult is the followup after a care command.
func TemplateActionResult(snap sim.Snapshot) string {
	if snap.Phase == sim.PhaseGameOver {
		return fmt.Sprintf("\U0001F480 **%s**\nSurvived %s (cause: %s). Use /start to try again.",
			snap.Status, snap.TimeAlive, snap.DeathCause)
	}
	return fmt.Sprintf("**%s**\nHunger %d | Happiness %d | Poo %d",
		snap.Status, snap.Hunger, snap.Happiness, snap.Poo)
}

// TemplateDeath is the channel announcement when the pet dies.
func TemplateDeath(snap sim.Snapshot) string {
	return fmt.Sprintf("\U0001F480 The badgagotchi has died: **%s** (%s)\nIt survived %s. Use /start when you're ready to try again.",
		snap.Status, snap.DeathCause, snap.TimeAlive)
}

// TemplateNewRecord is the channel announcement for a new best time.
func TemplateNewRecord(snap sim.Snapshot) string {
	return fmt.Sprintf("\U0001F3C6 New survival record: **%s**!", snap.TimeAlive)
}

// TemplateHelp lists the available commands.
func TemplateHelp() string {
	return strings.Join([]string{
		"**Badgagotchi commands**",
		"`/status` — check stats and mood",
		"`/feed` — feed the pet (overfeeding is fatal)",
		"`/play` — play with the pet (costs hunger, overdoing it is fatal)",
		"`/clean` — clean up poo (it gets annoyed if there's nothing to clean)",
		"`/start` — start a new life",
		"`/best` — show the best survival time",
	}, "\n")
}
