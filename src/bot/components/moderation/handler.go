package moderation

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/discord"
	"github.com/stake-plus/suggestions/src/suggestion"
)

type Config struct {
	Service *suggestion.Service
	Bot     config.Config
}

// Handler processes the moderation commands: status transitions and soft
// deletion. After every successful change the posted embed is re-rendered
// in place.
type Handler struct {
	config Config
}

func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

func (h *Handler) HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ns, ok := h.config.Bot.NamespaceForGuild(i.GuildID)
	if !ok {
		respondEphemeral(s, i, "Suggestions are not enabled in this server.")
		return
	}
	nsConfig := h.config.Bot.Namespaces[ns]

	userID := interactionUserID(i)
	if !h.hasRole(s, nsConfig.GuildID, userID, nsConfig.ModeratorRoleID) {
		respondEphemeral(s, i, "You don't have permission to use this command.")
		return
	}

	opts := optionMap(i)
	status, ok := suggestion.ParseStatus(stringOption(opts, "status"))
	if !ok {
		respondEphemeral(s, i, "Unknown status.")
		return
	}

	ctx := context.Background()
	rec := h.resolve(ctx, s, i, ns, stringOption(opts, "identifier"))
	if rec == nil {
		return
	}

	if err := h.config.Service.SetStatus(ctx, rec, userID, status, stringOption(opts, "reason")); err != nil {
		if errors.Is(err, suggestion.ErrAlreadyDeleted) {
			respondEphemeral(s, i, "That suggestion has been deleted.")
			return
		}
		log.Printf("moderation: set status: %v", err)
		respondEphemeral(s, i, "Failed to update the suggestion status.")
		return
	}

	h.rerender(ctx, s, rec, nsConfig)
	respondEphemeral(s, i, fmt.Sprintf("Suggestion marked: *%s*.", status.Label()))
}

func (h *Handler) HandleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ns, ok := h.config.Bot.NamespaceForGuild(i.GuildID)
	if !ok {
		respondEphemeral(s, i, "Suggestions are not enabled in this server.")
		return
	}
	nsConfig := h.config.Bot.Namespaces[ns]
	userID := interactionUserID(i)

	ctx := context.Background()
	rec := h.resolve(ctx, s, i, ns, stringOption(optionMap(i), "identifier"))
	if rec == nil {
		return
	}

	if rec.Author != userID && !h.hasRole(s, nsConfig.GuildID, userID, nsConfig.ModeratorRoleID) {
		respondEphemeral(s, i, "Only the author or a moderator can delete a suggestion.")
		return
	}

	if err := h.config.Service.SoftDelete(ctx, rec, userID); err != nil {
		if errors.Is(err, suggestion.ErrAlreadyDeleted) {
			respondEphemeral(s, i, "That suggestion has already been deleted.")
			return
		}
		log.Printf("moderation: soft delete: %v", err)
		respondEphemeral(s, i, "Failed to delete the suggestion.")
		return
	}

	h.rerender(ctx, s, rec, nsConfig)
	respondEphemeral(s, i, "Suggestion deleted.")
}

// resolve looks up the record named by raw input and reports failures to
// the user. A nil record means the interaction has already been answered.
func (h *Handler) resolve(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate,
	ns suggestion.Namespace, raw string) *suggestion.Suggestion {

	rec, err := h.config.Service.ResolveText(ctx, raw, ns)
	if err != nil {
		switch {
		case errors.Is(err, suggestion.ErrInvalidIdentifier):
			respondEphemeral(s, i, fmt.Sprintf("%q does not look like a suggestion identifier.", raw))
		case errors.Is(err, suggestion.ErrNotFound):
			respondEphemeral(s, i, fmt.Sprintf("No suggestion matches %q.", raw))
		default:
			log.Printf("moderation: resolve %q: %v", raw, err)
			respondEphemeral(s, i, "Failed to look up the suggestion.")
		}
		return nil
	}
	return rec
}

// rerender edits the posted embed to reflect the record's new state.
func (h *Handler) rerender(ctx context.Context, s *discordgo.Session, rec *suggestion.Suggestion, nsConfig config.NamespaceConfig) {
	if rec.Message == "" {
		return
	}
	displayID, err := h.config.Service.DisplayIdentifier(ctx, rec)
	if err != nil {
		log.Printf("moderation: display identifier for %d: %v", rec.ID, err)
		return
	}
	embed := discord.SuggestionEmbed(rec, displayID, "")
	if _, err := s.ChannelMessageEditEmbed(nsConfig.ChannelID, rec.Message, embed); err != nil {
		log.Printf("moderation: re-rendering #%s: %v", displayID, err)
	}
}

func (h *Handler) hasRole(s *discordgo.Session, guildID, userID, roleID string) bool {
	if roleID == "" {
		return false
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return false
	}

	for _, role := range member.Roles {
		if role == roleID {
			return true
		}
	}

	return false
}
