package suggest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"
	"github.com/stake-plus/suggestions/src/config"
	"github.com/stake-plus/suggestions/src/data"
	"github.com/stake-plus/suggestions/src/discord"
	"github.com/stake-plus/suggestions/src/suggestion"
)

type Config struct {
	Service  *suggestion.Service
	Redis    *redis.Client
	Bot      config.Config
	Cooldown time.Duration
}

// Handler processes /suggest interactions: cooldown, validation, identity
// assignment through the service, posting the embed and reacting to it.
type Handler struct {
	config Config
}

func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

func (h *Handler) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ns, ok := h.config.Bot.NamespaceForGuild(i.GuildID)
	if !ok {
		respondEphemeral(s, i, "Suggestions are not enabled in this server.")
		return
	}
	nsConfig := h.config.Bot.Namespaces[ns]
	if nsConfig.ChannelID != "" && i.ChannelID != nsConfig.ChannelID {
		respondEphemeral(s, i, fmt.Sprintf("Please run this command in <#%s>!", nsConfig.ChannelID))
		return
	}

	userID := interactionUserID(i)
	ctx := context.Background()

	if h.config.Redis != nil {
		acquired, err := data.AcquireCooldown(ctx, h.config.Redis, userID, h.config.Cooldown)
		if err != nil {
			// Redis being down should not block submissions.
			log.Printf("suggest: cooldown check: %v", err)
		} else if !acquired {
			remaining, _ := data.CooldownRemaining(ctx, h.config.Redis, userID)
			respondEphemeral(s, i, fmt.Sprintf("Please wait %d seconds before suggesting again.",
				int(remaining.Seconds())+1))
			return
		}
	}

	opts := optionMap(i)
	params := suggestion.CreateParams{
		Namespace: ns,
		Author:    userID,
		Title:     stringOption(opts, "title"),
		Body:      stringOption(opts, "body"),
		Teams:     stringOption(opts, "teams"),
		Anonymous: boolOption(opts, "anonymous"),
	}

	if raw := stringOption(opts, "extends"); raw != "" {
		ident := suggestion.ParseIdentifier(raw)
		if ident.Number == nil {
			respondEphemeral(s, i, fmt.Sprintf("%q does not look like a suggestion number.", raw))
			return
		}
		params.Extends = ident.Number
	}

	if err := deferEphemeral(s, i); err != nil {
		log.Printf("suggest: deferred response: %v", err)
		return
	}

	rec, err := h.config.Service.Create(ctx, params)
	if errors.Is(err, suggestion.ErrConflict) {
		// A concurrent submission won the sequence slot; retry the whole
		// submission once.
		rec, err = h.config.Service.Create(ctx, params)
	}
	if err != nil {
		editEphemeral(s, i, userMessage(err))
		return
	}

	displayID, err := h.config.Service.DisplayIdentifier(ctx, rec)
	if err != nil {
		log.Printf("suggest: display identifier for %d: %v", rec.ID, err)
		displayID = "?"
	}

	avatarURL := ""
	if !params.Anonymous && i.Member != nil && i.Member.User != nil {
		avatarURL = i.Member.User.AvatarURL("128")
	}

	embed := discord.SuggestionEmbed(rec, displayID, avatarURL)
	msg, err := s.ChannelMessageSendEmbed(nsConfig.ChannelID, embed)
	if err != nil {
		log.Printf("suggest: posting suggestion #%s: %v", displayID, err)
		editEphemeral(s, i, fmt.Sprintf("Suggestion #%s was saved but could not be posted.", displayID))
		return
	}

	if err := h.config.Service.SetMessage(ctx, rec, msg.ID); err != nil {
		log.Printf("suggest: storing message ref for #%s: %v", displayID, err)
	}

	for _, emoji := range []string{"👍", "👎"} {
		if err := s.MessageReactionAdd(nsConfig.ChannelID, msg.ID, emoji); err != nil {
			log.Printf("suggest: reacting to #%s: %v", displayID, err)
		}
	}

	editEphemeral(s, i, fmt.Sprintf("Suggestion **#%s** submitted: %s",
		displayID, discord.MessageURL(nsConfig.GuildID, nsConfig.ChannelID, msg.ID)))
}

// userMessage maps service errors to text safe to show the submitter.
func userMessage(err error) string {
	var vErr *suggestion.ValidationError
	if errors.As(err, &vErr) {
		return fmt.Sprintf("Invalid %s: %s.", vErr.Field, vErr.Reason)
	}
	if errors.Is(err, suggestion.ErrExtensionRange) {
		return "That suggestion already has the maximum number of extensions."
	}
	log.Printf("suggest: create failed: %v", err)
	return "Failed to submit your suggestion. Please try again."
}
