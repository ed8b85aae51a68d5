// Package discord is the remote frontend: slash commands feed the same
// action queue as the local buttons, the bot presence mirrors the pet's
// status line, and deaths and new records are announced in the channel.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"badgagotchi/internal/host"
	"badgagotchi/internal/sim"
)

// ActionSink is where slash-command input lands. The host implements it.
type ActionSink interface {
	PushAction(a sim.Action) bool
	Wake()
	Snapshot() sim.Snapshot
}

// actionSettle is how long a command handler waits after queueing an
// action before reading back the snapshot for its reply. A few ticks is
// plenty for the queue to drain.
const actionSettle = 250 * time.Millisecond

// Bot wraps the Discord session and manages slash commands, presence
// and announcements.
type Bot struct {
	session   *discordgo.Session
	channelID string
	ownerIDs  map[string]bool
	sink      ActionSink
}

// NewBot creates and configures a Discord bot (does not connect yet).
func NewBot(token, channelID string, ownerIDs []string, sink ActionSink) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("invalid bot token: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds

	owners := make(map[string]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		owners[id] = true
	}

	b := &Bot{
		session:   session,
		channelID: channelID,
		ownerIDs:  owners,
		sink:      sink,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Start opens the Discord connection and registers slash commands.
// Blocks until context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	if err := b.session.Open(); err != nil {
		slog.Error("discord: failed to open session", "err", err)
		return
	}

	slog.Info("discord: connected", "user", b.session.State.User.Username)
	b.registerCommands()

	<-ctx.Done()
	slog.Info("discord: shutting down")
	b.session.Close()
}

// OnEvent implements host.EventListener: presence tracks the status
// line, deaths and records get announced. Sends go through a goroutine
// so the tick loop never waits on Discord.
func (b *Bot) OnEvent(event host.Event, snap sim.Snapshot) {
	switch event {
	case host.EventStatusChanged:
		go b.updatePresence(snap)
	case host.EventDied:
		go b.sendMessage(b.channelID, TemplateDeath(snap))
	case host.EventNewRecord:
		go b.sendMessage(b.channelID, TemplateNewRecord(snap))
	}
}

// IsOwner checks if a user ID is in the owner list. An empty owner list
// means anyone may care for the pet.
func (b *Bot) IsOwner(userID string) bool {
	return len(b.ownerIDs) == 0 || b.ownerIDs[userID]
}

func (b *Bot) sendMessage(channelID, text string) {
	if text == "" || channelID == "" {
		return
	}
	if _, err := b.session.ChannelMessageSend(channelID, text); err != nil {
		slog.Error("discord: send message failed", "err", err)
	}
}

// updatePresence sets the bot's Discord status from the pet's state.
func (b *Bot) updatePresence(snap sim.Snapshot) {
	status, activity := statusToPresence(snap)
	err := b.session.UpdateStatusComplex(discordgo.UpdateStatusData{
		Status: status,
		Activities: []*discordgo.Activity{
			{
				Name: activity,
				Type: discordgo.ActivityTypeCustom,
			},
		},
	})
	if err != nil {
		slog.Debug("discord: update presence failed", "err", err)
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord: ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleCommand(i)
}

func (b *Bot) handleCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	snap := b.sink.Snapshot()

	switch data.Name {
	case "status":
		b.respondEmbed(i, StatusEmbed(snap))

	case "feed":
		b.careCommand(i, sim.ActionUp, "Feeding...")

	case "play":
		b.careCommand(i, sim.ActionRight, "Playing...")

	case "clean":
		b.careCommand(i, sim.ActionConfirm, "Cleaning up...")

	case "start":
		if snap.Phase == sim.PhasePlaying {
			b.respondEphemeral(i, "The pet is already alive. Try /status.")
			return
		}
		b.careCommand(i, sim.ActionConfirm, "Starting a new life...")

	case "best":
		msg := fmt.Sprintf("\U0001F3C6 Best survival time: **%s**", snap.BestTime)
		if snap.Phase == sim.PhasePlaying {
			msg += fmt.Sprintf("\nCurrent life: %s", snap.TimeAlive)
		}
		b.respond(i, msg)

	case "help":
		b.respond(i, TemplateHelp())

	default:
		b.respond(i, "Unknown command.")
	}
}

// careCommand queues an action, waits for the queue to drain, then
// follows up with the resulting state. busy is the immediate reply
// shown while the action lands.
func (b *Bot) careCommand(i *discordgo.InteractionCreate, action sim.Action, busy string) {
	if !b.IsOwner(interactionUserID(i)) {
		b.respondEphemeral(i, "Nice try. Only my owner gets to care for me.")
		return
	}

	b.respond(i, busy)
	b.sink.Wake()
	if !b.sink.PushAction(action) {
		b.followup(i, "The pet is overwhelmed with button presses. Try again in a second.")
		return
	}

	slog.Debug("discord: queued action", "action", action.String())
	time.Sleep(actionSettle)
	b.followup(i, TemplateActionResult(b.sink.Snapshot()))
}

func (b *Bot) registerCommands() {
	appID := b.session.State.User.ID
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "status",
			Description: "Check the pet's stats and status",
		},
		{
			Name:        "feed",
			Description: "Feed the pet (careful not to overfeed)",
		},
		{
			Name:        "play",
			Description: "Play with the pet (careful not to overdo it)",
		},
		{
			Name:        "clean",
			Description: "Clean up after the pet",
		},
		{
			Name:        "start",
			Description: "Start a new life (or restart after a death)",
		},
		{
			Name:        "best",
			Description: "Show the best survival time",
		},
		{
			Name:        "help",
			Description: "Show available commands",
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			slog.Error("discord: failed to register command", "cmd", cmd.Name, "err", err)
		} else {
			slog.Info("discord: registered command", "cmd", cmd.Name)
		}
	}
}

// --- Interaction response helpers ---

func (b *Bot) respond(i *discordgo.InteractionCreate, content string) {
	b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func (b *Bot) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (b *Bot) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) followup(i *discordgo.InteractionCreate, content string) {
	b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
}

func statusToPresence(snap sim.Snapshot) (status, activity string) {
	if snap.Phase == sim.PhaseGameOver {
		return "dnd", "\U0001F480 " + snap.Status
	}
	switch snap.Status {
	case "This is Great!":
		return "online", "feeling great!"
	case "I'm hungry!":
		return "idle", "getting hungry..."
	case "I'm gunna Poo!":
		return "idle", "needs a cleanup..."
	case "Urgh, I'm Bored!":
		return "idle", "anyone there?"
	default:
		return "online", snap.Status
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
