package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"gssoc-leaderbot/internal/domain"
	"gssoc-leaderbot/internal/format"
)

// reactionWindow is how long tier reactions on a report message are accepted.
const reactionWindow = 60 * time.Second

// tiers lists the reaction markers seeded on a report message, in order,
// with the tier label each one reveals.
var tiers = []struct {
	Emoji string
	Label string
	Title string
}{
	{Emoji: "1️⃣", Label: "level1", Title: "Level 1 PRs"},
	{Emoji: "2️⃣", Label: "level2", Title: "Level 2 PRs"},
	{Emoji: "3️⃣", Label: "level3", Title: "Level 3 PRs"},
}

// reactionWatch is a short-lived subscription to reaction-add events on one
// sent message. Every event is checked against the window deadline; when the
// window elapses the handler is removed and late reactions are dropped
// silently.
type reactionWatch struct {
	d           *Dispatcher
	channelID   string
	messageID   string
	mergedToday []domain.Item
	startedAt   time.Time
	window      time.Duration

	disposeOnce sync.Once
	remove      func()
}

// watchReactions opens a reaction watch on the given message for the standard
// window.
func (d *Dispatcher) watchReactions(channelID, messageID string, mergedToday []domain.Item) *reactionWatch {
	w := &reactionWatch{
		d:           d,
		channelID:   channelID,
		messageID:   messageID,
		mergedToday: mergedToday,
		startedAt:   time.Now(),
		window:      reactionWindow,
	}
	w.remove = d.session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		w.handle(r)
	})
	time.AfterFunc(w.window, w.dispose)
	return w
}

// dispose unregisters the reaction handler. Safe to call more than once.
func (w *reactionWatch) dispose() {
	w.disposeOnce.Do(func() {
		if w.remove != nil {
			w.remove()
		}
	})
}

func (w *reactionWatch) handle(r *discordgo.MessageReactionAdd) {
	if r.MessageID != w.messageID {
		return
	}
	// Handler removal races the expiry timer, so the deadline is re-checked
	// on every event.
	if time.Since(w.startedAt) > w.window {
		return
	}
	if r.UserID == w.d.botID {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}

	for _, tier := range tiers {
		if tier.Emoji != r.Emoji.Name {
			continue
		}
		reactor := r.UserID
		if r.Member != nil && r.Member.User != nil {
			reactor = r.Member.User.Username
		}
		prs := domain.FilterByLabel(w.mergedToday, tier.Label)
		if _, err := w.d.session.ChannelMessageSendEmbed(w.channelID, format.TierEmbed(prs, tier.Title, reactor)); err != nil {
			w.d.logger.Error("failed to send tier listing",
				zap.String("tier", tier.Label), zap.Error(err))
		}
		return
	}
}
