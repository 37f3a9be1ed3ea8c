// Package domain contains the core data structures and scoring logic for the
// application.
package domain

import (
	"strings"

	"github.com/montanaflynn/stats"
)

// Item is an immutable snapshot of a pull request or issue as returned by the
// GitHub search API. Only the fields the bot renders or scores are kept.
type Item struct {
	Title  string
	URL    string
	Labels []string
}

// Profile holds the subset of a GitHub user profile the bot displays.
type Profile struct {
	Login     string
	AvatarURL string
	HTMLURL   string
}

// LabelPoints maps a lower-cased tier label to its point value. Labels absent
// from the table are worth nothing.
var LabelPoints = map[string]int{
	"level1": 10,
	"level2": 25,
	"level3": 45,
}

// TierLabels lists the scoring labels in ascending tier order.
var TierLabels = []string{"level1", "level2", "level3"}

// Score sums the point values of every scoring label across items. An item
// carrying more than one tier label accumulates all of them; that matches the
// upstream leaderboard rules and must not be "fixed" to take the highest tier.
func Score(items []Item) int {
	total := 0
	for _, item := range items {
		for _, label := range item.Labels {
			total += LabelPoints[strings.ToLower(label)]
		}
	}
	return total
}

// MeanScore returns the average point value per item, 0 for an empty slice.
func MeanScore(items []Item) float64 {
	if len(items) == 0 {
		return 0
	}
	points := make([]float64, 0, len(items))
	for _, item := range items {
		points = append(points, float64(Score([]Item{item})))
	}
	mean, err := stats.Mean(points)
	if err != nil {
		return 0
	}
	return mean
}

// HasLabel reports whether the item carries the given label,
// compared case-insensitively.
func HasLabel(item Item, name string) bool {
	for _, label := range item.Labels {
		if strings.EqualFold(label, name) {
			return true
		}
	}
	return false
}

// FilterByLabel returns the items carrying the given label, preserving order.
func FilterByLabel(items []Item, name string) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if HasLabel(item, name) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Bundle is the aggregate activity of one account at one point in time.
// MergedToday is always a subset of MergedPRs. Bundles are never persisted.
type Bundle struct {
	User           string
	OpenPRs        []Item
	MergedPRs      []Item
	MergedToday    []Item
	AssignedIssues []Item

	// DailyScore is Score(MergedToday), computed once at aggregation time.
	DailyScore int
}
