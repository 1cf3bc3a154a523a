package discord

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/suggestions/src/suggestion"
)

const (
	CommandSuggest = "suggest"
	CommandStatus  = "suggeststatus"
	CommandDelete  = "suggestdelete"
)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandSuggest: {
		Name:        CommandSuggest,
		Description: "Make a suggestion",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "title",
				Description: "Short title for your suggestion",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "body",
				Description: "The suggestion itself (up to 2048 characters)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "teams",
				Description: "Team/s the suggestion concerns",
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "anonymous",
				Description: "Hide your name on the posted suggestion",
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "extends",
				Description: "Number of the suggestion this one extends or duplicates (e.g. 42)",
			},
		},
	},
	CommandStatus: {
		Name:        CommandStatus,
		Description: "Set the moderation status of a suggestion",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "identifier",
				Description: "The suggestion to update (e.g. 42 or 42b)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "status",
				Description: "The new status",
				Required:    true,
				Choices:     statusChoices(),
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Optional reason shown with the status",
			},
		},
	},
	CommandDelete: {
		Name:        CommandDelete,
		Description: "Delete a suggestion (author or moderator only)",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "identifier",
				Description: "The suggestion to delete (e.g. 42 or 42b)",
				Required:    true,
			},
		},
	},
}

var defaultCommandOrder = []string{
	CommandSuggest,
	CommandStatus,
	CommandDelete,
}

func statusChoices() []*discordgo.ApplicationCommandOptionChoice {
	statuses := suggestion.Statuses()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(statuses))
	for _, st := range statuses {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  st.Label(),
			Value: string(st),
		})
	}
	return choices
}

// RegisterSlashCommands registers the requested slash commands for a guild.
// When no command names are provided, all known commands are registered.
func RegisterSlashCommands(s *discordgo.Session, guildID string, names ...string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to register slash commands")
	}

	if len(names) == 0 {
		names = defaultCommandOrder
	}

	var failures []string
	for _, name := range names {
		definition, ok := commandDefinitions[name]
		if !ok {
			log.Printf("discord: unknown slash command %q", name)
			continue
		}

		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, definition)
		if err != nil {
			if isDuplicateCommandError(err) {
				log.Printf("discord: slash command %q already registered", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			log.Printf("discord: failed to register command %q: %v", name, err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("discord: slash command registration errors: %s", strings.Join(failures, "; "))
	}

	return nil
}

// DeleteSlashCommands removes all registered slash commands for a guild.
func DeleteSlashCommands(s *discordgo.Session, guildID string) error {
	if guildID == "" {
		return fmt.Errorf("discord: guildID is required to delete slash commands")
	}

	commands, err := s.ApplicationCommands(s.State.User.ID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		if err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID); err != nil {
			return err
		}
	}

	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		if restErr.Message != nil {
			msg := strings.ToLower(restErr.Message.Message)
			if strings.Contains(msg, "already exists") {
				return true
			}
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "50035") && strings.Contains(msg, "already exists")
}
