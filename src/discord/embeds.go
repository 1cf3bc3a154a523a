package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/stake-plus/suggestions/src/suggestion"
)

const (
	colorNeutral = 0x999999
	colorError   = 0xED4245
)

var statusColors = map[suggestion.Status]int{
	suggestion.StatusApproved:    0x57F287,
	suggestion.StatusDenied:      0xED4245,
	suggestion.StatusDuplicate:   0xFEE75C,
	suggestion.StatusForwarded:   0x5865F2,
	suggestion.StatusInProgress:  0xE67E22,
	suggestion.StatusInformation: 0x3498DB,
	suggestion.StatusInvalid:     0x95A5A6,
}

// SuggestionEmbed renders the posted representation of a record. displayID
// is the precomputed identifier ("50" or "50c"); avatarURL may be empty.
// Tombstoned records render a short deletion notice that names the deleter
// ("the author" for self-deletes) and suppresses everything else.
func SuggestionEmbed(rec *suggestion.Suggestion, displayID, avatarURL string) *discordgo.MessageEmbed {
	p := suggestion.Present(rec)

	if p.Kind == suggestion.PresentationTombstone {
		deleter := "the author"
		if !p.SelfDeleted {
			deleter = fmt.Sprintf("<@%s>", p.Deleter)
		}
		return &discordgo.MessageEmbed{
			Color:       colorError,
			Description: fmt.Sprintf("**#%s**: The suggestion has been deleted by %s.", displayID, deleter),
		}
	}

	embed := &discordgo.MessageEmbed{
		Color:       colorNeutral,
		Author:      &discordgo.MessageEmbedAuthor{Name: fmt.Sprintf("#%s - %s", displayID, rec.Title)},
		Description: rec.Body,
	}

	if rec.Teams != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Team/s",
			Value: *rec.Teams,
		})
	}

	if !rec.Anonymous {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Author",
			Value: fmt.Sprintf("<@%s>", rec.Author),
		})
		if p.Kind == suggestion.PresentationUnset && avatarURL != "" {
			embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
		}
	}

	if p.Kind == suggestion.PresentationActive {
		if color, ok := statusColors[p.Status]; ok {
			embed.Color = color
		}
		value := fmt.Sprintf("*%s by <@%s>.*", p.StatusLabel, p.StatusUpdater)
		if p.StatusReason != "" {
			value += "\n\n" + p.StatusReason
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Status",
			Value: value,
		})
	}

	return embed
}

// MessageURL builds the jump link for a stored suggestion message.
func MessageURL(guildID, channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
