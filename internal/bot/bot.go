// Package bot is the Discord shim: a thin gateway around the selection
// engine. It owns no selection logic beyond translating command options
// into a filter.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kindled/noaas/internal/pick"
	"github.com/kindled/noaas/internal/store"
	"github.com/kindled/noaas/internal/ui"
)

// Bot wraps a Discord gateway session over the corpus library.
type Bot struct {
	session *discordgo.Session
	lib     *store.Library
	guildID string
}

// New creates a bot from a gateway token.
func New(token string, lib *store.Library, cfg store.BotConfig) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{session: session, lib: lib, guildID: cfg.GuildID}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	session.AddHandler(b.onMessage)
	return b, nil
}

// Run connects to the gateway, registers commands, and blocks until ctx is
// done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer b.session.Close()

	if err := b.registerCommands(); err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	ui.Logger.Info("logged in", "user", r.User.Username)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	var content string
	switch data.Name {
	case "no":
		content = b.excuse(filterFromOptions(data.Options))
	case "No this":
		content = b.excuse(pick.Filter{})
	default:
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
	if err != nil {
		ui.Logger.Warn("interaction reply failed", "err", err)
	}
}

// onMessage replies with an excuse whenever the bot is mentioned.
func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	mentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content:         b.excuse(pick.Filter{}),
		Reference:       m.Reference(),
		AllowedMentions: &discordgo.MessageAllowedMentions{RepliedUser: false},
	})
	if err != nil {
		ui.Logger.Warn("mention reply failed", "err", err)
	}
}

// excuse renders the selection outcome as chat text.
func (b *Bot) excuse(f pick.Filter) string {
	res := pick.Pick(b.lib.Snapshot(), f)
	switch res.Outcome {
	case pick.EmptyCorpus:
		return "No reasons available right now."
	case pick.NoMatch:
		return "No reasons match those filters. Try fewer of them."
	default:
		return res.Reason.Text
	}
}

// filterFromOptions maps slash-command options onto a filter.
func filterFromOptions(options []*discordgo.ApplicationCommandInteractionDataOption) pick.Filter {
	var f pick.Filter
	for _, opt := range options {
		switch opt.Name {
		case "type":
			f.Types = append(f.Types, opt.StringValue())
		case "tone":
			f.Tones = append(f.Tones, opt.StringValue())
		case "topic":
			f.Topics = append(f.Topics, opt.StringValue())
		case "tag":
			f.Tags = append(f.Tags, opt.StringValue())
		}
	}
	return f
}
