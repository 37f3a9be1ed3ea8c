// Package format builds the Discord embeds the bot sends. Builders are pure
// mappings from computed numbers to display payloads and tolerate zero values
// and empty listings.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"gssoc-leaderbot/internal/domain"
)

const (
	colorBlue   = 0x0099FF
	colorGreen  = 0x00FF00
	colorPurple = 0x6A0DAD
)

func profileLink(user string) string {
	return fmt.Sprintf("[%s](https://github.com/%s)", user, user)
}

func field(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

// ScoreEmbed renders the single-account activity summary.
func ScoreEmbed(profile *domain.Profile, bundle *domain.Bundle, allTimeScore int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:     colorBlue,
		Title:     fmt.Sprintf("Stats for %s", bundle.User),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: profile.AvatarURL},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Profile", Value: fmt.Sprintf("[Click here](https://github.com/%s)", bundle.User)},
			field("📑 Total Open PRs", fmt.Sprint(len(bundle.OpenPRs))),
			field("📦 Merged PRs Today", fmt.Sprint(len(bundle.MergedToday))),
			field("✅ Total Merged PRs", fmt.Sprint(len(bundle.MergedPRs))),
			field("💰 Daily Score", fmt.Sprint(bundle.DailyScore)),
			field("🏆 Total Score", fmt.Sprint(allTimeScore)),
			field("📝 Assigned Issues", fmt.Sprint(len(bundle.AssignedIssues))),
		},
	}
}

// TierEmbed lists the given PRs as markdown links, titled for the reactor who
// requested them. An empty slice renders a placeholder line.
func TierEmbed(prs []domain.Item, title, reactor string) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(prs))
	for _, pr := range prs {
		lines = append(lines, fmt.Sprintf("- [%s](%s)", pr.Title, pr.URL))
	}
	description := strings.Join(lines, "\n")
	if description == "" {
		description = "No PRs found."
	}
	return &discordgo.MessageEmbed{
		Color:       colorGreen,
		Title:       fmt.Sprintf("%s - %s", title, reactor),
		Description: description,
	}
}

// FilteredEmbed renders the label-filtered report: overall counts for the
// filtered sets plus a per-tier breakdown of the filtered merged PRs.
// tierCounts is ordered like domain.TierLabels.
func FilteredEmbed(user string, merged, assigned, open int, tierCounts []int) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "👤 Profile", Value: fmt.Sprintf("[Click here](https://github.com/%s)", user)},
		field("📑 Total GSSoC PRs", fmt.Sprint(merged)),
		field("📦 Assigned GSSoC Issues", fmt.Sprint(assigned)),
		field("🔄 Open GSSoC PRs", fmt.Sprint(open)),
	}
	for i, count := range tierCounts {
		fields = append(fields, field(fmt.Sprintf("⚙️ Level %d GSSoC PRs", i+1), fmt.Sprint(count)))
	}
	return &discordgo.MessageEmbed{
		Color:     colorPurple,
		Title:     fmt.Sprintf("🚀 GSSoC Stats for %s 🚀", user),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: fmt.Sprintf("https://github.com/%s.png", user)},
		Fields:    fields,
	}
}

// CompareEmbed renders two accounts' bundles side by side.
func CompareEmbed(a, b *domain.Bundle, allTimeA, allTimeB int) *discordgo.MessageEmbed {
	pair := func(va, vb any) string {
		return fmt.Sprintf("%s: %v\n%s: %v", a.User, va, b.User, vb)
	}
	return &discordgo.MessageEmbed{
		Color: colorGreen,
		Title: fmt.Sprintf("📊 GitHub Stats: %s vs %s 📊", a.User, b.User),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Profile", Value: fmt.Sprintf("%s vs %s", profileLink(a.User), profileLink(b.User))},
			field("📑 Total Open PRs", pair(len(a.OpenPRs), len(b.OpenPRs))),
			field("✅ Total Merged PRs", pair(len(a.MergedPRs), len(b.MergedPRs))),
			field("📅 Merged PRs Today", pair(len(a.MergedToday), len(b.MergedToday))),
			field("💰 Daily Score", pair(a.DailyScore, b.DailyScore)),
			field("🏆 Total Score", pair(allTimeA, allTimeB)),
			field("📝 Assigned Issues", pair(len(a.AssignedIssues), len(b.AssignedIssues))),
			field("📈 Avg Score / Merged PR", pair(
				fmt.Sprintf("%.1f", domain.MeanScore(a.MergedPRs)),
				fmt.Sprintf("%.1f", domain.MeanScore(b.MergedPRs)),
			)),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
