package discord

import (
	"testing"
	"time"

	"github.com/stake-plus/suggestions/src/suggestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *suggestion.Suggestion {
	number := int64(50)
	return &suggestion.Suggestion{
		ID:        1,
		Namespace: suggestion.NamespaceMain,
		Number:    &number,
		Author:    "111",
		Title:     "Add dark mode",
		Body:      "It would be easier on the eyes.",
	}
}

func TestSuggestionEmbedUnset(t *testing.T) {
	rec := sampleRecord()

	embed := SuggestionEmbed(rec, "50", "https://cdn.example/avatar.png")

	require.NotNil(t, embed.Author)
	assert.Equal(t, "#50 - Add dark mode", embed.Author.Name)
	assert.Equal(t, rec.Body, embed.Description)
	require.NotNil(t, embed.Thumbnail)

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Author", embed.Fields[0].Name)
	assert.Equal(t, "<@111>", embed.Fields[0].Value)
}

func TestSuggestionEmbedAnonymous(t *testing.T) {
	rec := sampleRecord()
	rec.Anonymous = true

	embed := SuggestionEmbed(rec, "50", "https://cdn.example/avatar.png")

	assert.Nil(t, embed.Thumbnail)
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Author", f.Name)
	}
}

func TestSuggestionEmbedStatus(t *testing.T) {
	rec := sampleRecord()
	st := suggestion.StatusDuplicate
	updater := "222"
	reason := "Same as #12."
	rec.Status = &st
	rec.StatusUpdater = &updater
	rec.StatusReason = &reason

	embed := SuggestionEmbed(rec, "50", "")

	assert.Equal(t, statusColors[st], embed.Color)
	require.NotEmpty(t, embed.Fields)
	last := embed.Fields[len(embed.Fields)-1]
	assert.Equal(t, "Status", last.Name)
	assert.Equal(t, "*Marked as duplicate by <@222>.*\n\nSame as #12.", last.Value)
}

func TestSuggestionEmbedTombstone(t *testing.T) {
	rec := sampleRecord()
	now := time.Now().UTC()
	deleter := "333"
	rec.DeletedAt = &now
	rec.Deleter = &deleter

	embed := SuggestionEmbed(rec, "50", "")

	assert.Equal(t, colorError, embed.Color)
	assert.Equal(t, "**#50**: The suggestion has been deleted by <@333>.", embed.Description)
	assert.Empty(t, embed.Fields)
	assert.Nil(t, embed.Author)

	// Self-deletes name "the author" instead of the deleter.
	rec.Deleter = &rec.Author
	embed = SuggestionEmbed(rec, "50", "")
	assert.Equal(t, "**#50**: The suggestion has been deleted by the author.", embed.Description)
}

func TestMessageURL(t *testing.T) {
	assert.Equal(t,
		"https://discord.com/channels/1/2/3",
		MessageURL("1", "2", "3"))
}
