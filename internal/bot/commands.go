package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kindled/noaas/internal/reason"
)

// registerCommands overwrites the application command set: the /no slash
// command with optional filter choices, and the "No this" message context
// menu. An empty guild id registers globally.
func (b *Bot) registerCommands() error {
	choice := func(value string) *discordgo.ApplicationCommandOptionChoice {
		return &discordgo.ApplicationCommandOptionChoice{Name: value, Value: value}
	}

	var typeChoices, toneChoices, topicChoices []*discordgo.ApplicationCommandOptionChoice
	for _, t := range reason.AllTypes() {
		typeChoices = append(typeChoices, choice(string(t)))
	}
	for _, t := range reason.AllTones() {
		toneChoices = append(toneChoices, choice(string(t)))
	}
	for _, t := range reason.AllTopics() {
		topicChoices = append(topicChoices, choice(string(t)))
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "no",
			Description: "Get a reason to say no",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "type",
					Description: "Kind of excuse",
					Choices:     typeChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tone",
					Description: "How it should sound",
					Choices:     toneChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "topic",
					Description: "What it should be about",
					Choices:     topicChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag",
					Description: "Specific tag to match",
				},
			},
		},
		{
			Name: "No this",
			Type: discordgo.MessageApplicationCommand,
		},
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID, b.guildID, commands)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	return nil
}
