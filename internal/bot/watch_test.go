package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gssoc-leaderbot/internal/domain"
)

func reaction(messageID, userID, emoji string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{MessageReaction: &discordgo.MessageReaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     discordgo.Emoji{Name: emoji},
	}}
}

func TestReactionWatch(t *testing.T) {
	mergedToday := []domain.Item{
		{Title: "today-1", URL: "https://github.com/o/r/pull/4", Labels: []string{"level1"}},
		{Title: "today-2", URL: "https://github.com/o/r/pull/5", Labels: []string{"level2"}},
	}

	t.Run("tier reaction sends the matching listing", func(t *testing.T) {
		dispatcher, session, _ := newTestDispatcher()
		watch := dispatcher.watchReactions("channel", "msg-1", mergedToday)

		watch.handle(reaction("msg-1", "user-1", "1️⃣"))

		require.Len(t, session.embeds, 1)
		embed := session.embeds[0]
		assert.Contains(t, embed.Title, "Level 1 PRs")
		assert.Contains(t, embed.Description, "[today-1](https://github.com/o/r/pull/4)")
		assert.NotContains(t, embed.Description, "today-2")
	})

	t.Run("tier with no merged PRs renders the placeholder line", func(t *testing.T) {
		dispatcher, session, _ := newTestDispatcher()
		watch := dispatcher.watchReactions("channel", "msg-1", mergedToday)

		watch.handle(reaction("msg-1", "user-1", "3️⃣"))

		require.Len(t, session.embeds, 1)
		assert.Equal(t, "No PRs found.", session.embeds[0].Description)
	})

	t.Run("reactor name appears in the title", func(t *testing.T) {
		dispatcher, session, _ := newTestDispatcher()
		watch := dispatcher.watchReactions("channel", "msg-1", mergedToday)

		event := reaction("msg-1", "user-1", "2️⃣")
		event.Member = &discordgo.Member{User: &discordgo.User{ID: "user-1", Username: "casey"}}
		watch.handle(event)

		require.Len(t, session.embeds, 1)
		assert.Equal(t, "Level 2 PRs - casey", session.embeds[0].Title)
	})

	t.Run("ignored events", func(t *testing.T) {
		testCases := []struct {
			name  string
			event *discordgo.MessageReactionAdd
			setup func(w *reactionWatch)
		}{
			{
				name:  "reaction on another message",
				event: reaction("other-msg", "user-1", "1️⃣"),
			},
			{
				name:  "non-tier emoji",
				event: reaction("msg-1", "user-1", "🎉"),
			},
			{
				name:  "the bot's own seeded reaction",
				event: reaction("msg-1", "bot-id", "1️⃣"),
			},
			{
				name: "bot member reaction",
				event: func() *discordgo.MessageReactionAdd {
					e := reaction("msg-1", "user-2", "1️⃣")
					e.Member = &discordgo.Member{User: &discordgo.User{ID: "user-2", Bot: true}}
					return e
				}(),
			},
			{
				name:  "reaction after the window elapsed",
				event: reaction("msg-1", "user-1", "1️⃣"),
				setup: func(w *reactionWatch) {
					w.startedAt = time.Now().Add(-2 * reactionWindow)
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				dispatcher, session, _ := newTestDispatcher()
				dispatcher.SetBotID("bot-id")
				watch := dispatcher.watchReactions("channel", "msg-1", mergedToday)
				if tc.setup != nil {
					tc.setup(watch)
				}

				watch.handle(tc.event)

				assert.Empty(t, session.embeds)
			})
		}
	})

	t.Run("dispose removes the handler exactly once", func(t *testing.T) {
		dispatcher, session, _ := newTestDispatcher()
		watch := dispatcher.watchReactions("channel", "msg-1", nil)

		require.Len(t, session.handlers, 1)
		watch.dispose()
		assert.True(t, session.removed)
		watch.dispose() // second call is a no-op
	})

	t.Run("registered handler feeds events into the watch", func(t *testing.T) {
		dispatcher, session, _ := newTestDispatcher()
		dispatcher.watchReactions("channel", "msg-1", mergedToday)

		handler, ok := session.handlers[0].(func(*discordgo.Session, *discordgo.MessageReactionAdd))
		require.True(t, ok)
		handler(nil, reaction("msg-1", "user-1", "2️⃣"))

		require.Len(t, session.embeds, 1)
		assert.Contains(t, session.embeds[0].Description, "today-2")
	})
}
