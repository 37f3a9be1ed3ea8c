// Package bot implements the Discord side of the application: command
// parsing, the workflows behind each command, and reaction-driven follow-ups.
package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gssoc-leaderbot/internal/domain"
	"gssoc-leaderbot/internal/format"
	"gssoc-leaderbot/internal/gateway"
	"gssoc-leaderbot/internal/usecase"
)

const (
	cmdReport   = "!github"
	cmdFiltered = "!gssoc"
	cmdCompare  = "!compare"

	// filterLabel marks items that belong to the GSSoC program.
	filterLabel = "gssoc-ext"
)

var compareRe = regexp.MustCompile(`(?i)(\S+)\s+vs\s+(\S+)`)

// ArgumentError marks a missing or malformed command argument. Its message is
// shown to the user verbatim and no fetch is attempted.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// Dispatcher routes incoming chat messages to command workflows. It owns the
// only piece of shared mutable state in the bot, the last-queried account,
// which the filtered report reuses when its argument is omitted.
type Dispatcher struct {
	session Session
	fetcher gateway.Fetcher
	agg     *usecase.Aggregator
	logger  *zap.Logger
	botID   string

	mu       sync.Mutex
	lastUser string
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(session Session, fetcher gateway.Fetcher, agg *usecase.Aggregator, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		session: session,
		fetcher: fetcher,
		agg:     agg,
		logger:  logger,
	}
}

// SetBotID records the bot's own user ID so its reactions are ignored.
// Call it once the gateway session is open.
func (d *Dispatcher) SetBotID(id string) { d.botID = id }

func (d *Dispatcher) setLastUser(user string) {
	d.mu.Lock()
	d.lastUser = user
	d.mu.Unlock()
}

func (d *Dispatcher) lastQueried() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUser
}

// HandleMessage routes one message-create event. Messages authored by bots
// are never treated as commands.
func (d *Dispatcher) HandleMessage(m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	switch {
	case strings.HasPrefix(m.Content, cmdReport):
		d.handleReport(m)
	case strings.HasPrefix(m.Content, cmdFiltered):
		d.handleFiltered(m)
	case strings.HasPrefix(m.Content, cmdCompare):
		d.handleCompare(m)
	}
}

// handleReport implements `!github <account>`: a full activity summary with
// tier reactions attached for the follow-up listings.
func (d *Dispatcher) handleReport(m *discordgo.MessageCreate) {
	fields := strings.Fields(m.Content)
	if len(fields) < 2 {
		d.sendText(m.ChannelID, "Please provide a valid GitHub username!")
		return
	}
	user := fields[1]

	placeholder := d.sendText(m.ChannelID, "Fetching data... Please wait!")
	ctx := context.Background()

	profile, err := d.fetcher.FetchProfile(ctx, user)
	var bundle *domain.Bundle
	if err == nil {
		bundle, err = d.agg.Fetch(ctx, user)
	}
	if err != nil {
		d.fail(m.ChannelID, placeholder, user, err,
			"An error occurred while fetching data. Please try again later.")
		return
	}
	d.setLastUser(user)

	allTimeScore := domain.Score(bundle.MergedPRs)
	d.deletePlaceholder(m.ChannelID, placeholder)
	sent, err := d.session.ChannelMessageSendEmbed(m.ChannelID, format.ScoreEmbed(profile, bundle, allTimeScore))
	if err != nil {
		d.logger.Error("failed to send report embed", zap.String("user", user), zap.Error(err))
		return
	}

	for _, tier := range tiers {
		if err := d.session.MessageReactionAdd(m.ChannelID, sent.ID, tier.Emoji); err != nil {
			d.logger.Warn("failed to add tier reaction",
				zap.String("emoji", tier.Emoji), zap.Error(err))
		}
	}
	d.watchReactions(m.ChannelID, sent.ID, bundle.MergedToday)
}

// handleFiltered implements `!gssoc [account]`, falling back to the account
// of the most recent successful report when the argument is omitted.
func (d *Dispatcher) handleFiltered(m *discordgo.MessageCreate) {
	user, err := d.resolveAccount(m.Content)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			d.sendText(m.ChannelID, argErr.Message)
		}
		return
	}

	placeholder := d.sendText(m.ChannelID, fmt.Sprintf("Fetching GSSoC data for %s... Please wait!", user))
	bundle, err := d.agg.Fetch(context.Background(), user)
	if err != nil {
		d.fail(m.ChannelID, placeholder, user, err,
			"An error occurred while fetching GSSoC data. Please try again later.")
		return
	}

	merged := domain.FilterByLabel(bundle.MergedPRs, filterLabel)
	open := domain.FilterByLabel(bundle.OpenPRs, filterLabel)
	assigned := domain.FilterByLabel(bundle.AssignedIssues, filterLabel)
	tierCounts := make([]int, len(domain.TierLabels))
	for i, label := range domain.TierLabels {
		tierCounts[i] = len(domain.FilterByLabel(merged, label))
	}

	d.deletePlaceholder(m.ChannelID, placeholder)
	embed := format.FilteredEmbed(user, len(merged), len(assigned), len(open), tierCounts)
	if _, err := d.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		d.logger.Error("failed to send filtered embed", zap.String("user", user), zap.Error(err))
	}
}

// resolveAccount extracts the account argument, defaulting to the
// last-queried one.
func (d *Dispatcher) resolveAccount(content string) (string, error) {
	if fields := strings.Fields(content); len(fields) >= 2 {
		return fields[1], nil
	}
	if user := d.lastQueried(); user != "" {
		return user, nil
	}
	return "", &ArgumentError{Message: "Please use the !github command first or provide a username."}
}

// handleCompare implements `!compare <a> vs <b>`. Both accounts' profiles and
// bundles are fetched concurrently; any failure fails the whole command.
func (d *Dispatcher) handleCompare(m *discordgo.MessageCreate) {
	args := strings.TrimSpace(strings.TrimPrefix(m.Content, cmdCompare))
	match := compareRe.FindStringSubmatch(args)
	if match == nil {
		d.sendText(m.ChannelID, "Please use the correct format: `!compare <username1> vs <username2>`")
		return
	}
	userA, userB := match[1], match[2]

	placeholder := d.sendText(m.ChannelID,
		fmt.Sprintf("Fetching comparison data for %s vs %s... Please wait!", userA, userB))

	var bundleA, bundleB *domain.Bundle
	eg, egCtx := errgroup.WithContext(context.Background())
	eg.Go(func() error {
		_, err := d.fetcher.FetchProfile(egCtx, userA)
		return err
	})
	eg.Go(func() error {
		_, err := d.fetcher.FetchProfile(egCtx, userB)
		return err
	})
	eg.Go(func() error {
		var err error
		bundleA, err = d.agg.Fetch(egCtx, userA)
		return err
	})
	eg.Go(func() error {
		var err error
		bundleB, err = d.agg.Fetch(egCtx, userB)
		return err
	})
	if err := eg.Wait(); err != nil {
		d.fail(m.ChannelID, placeholder, userA+" vs "+userB, err,
			"An error occurred while fetching comparison data. Please ensure both usernames are correct.")
		return
	}

	d.deletePlaceholder(m.ChannelID, placeholder)
	embed := format.CompareEmbed(bundleA, bundleB, domain.Score(bundleA.MergedPRs), domain.Score(bundleB.MergedPRs))
	if _, err := d.session.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		d.logger.Error("failed to send comparison embed",
			zap.String("users", userA+" vs "+userB), zap.Error(err))
	}
}

func (d *Dispatcher) sendText(channelID, content string) *discordgo.Message {
	msg, err := d.session.ChannelMessageSend(channelID, content)
	if err != nil {
		d.logger.Warn("failed to send message", zap.Error(err))
	}
	return msg
}

func (d *Dispatcher) deletePlaceholder(channelID string, msg *discordgo.Message) {
	if msg == nil {
		return
	}
	if err := d.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
		d.logger.Warn("failed to delete placeholder", zap.Error(err))
	}
}

// fail is the command-level error boundary: log the cause, drop the
// placeholder, tell the user something generic. Error detail never reaches
// the channel.
func (d *Dispatcher) fail(channelID string, placeholder *discordgo.Message, subject string, err error, notice string) {
	d.logger.Error("command failed", zap.String("subject", subject), zap.Error(err))
	d.deletePlaceholder(channelID, placeholder)
	d.sendText(channelID, notice)
}
