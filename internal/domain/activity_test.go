package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	testCases := []struct {
		name     string
		items    []Item
		expected int
	}{
		{
			name:     "no items",
			items:    nil,
			expected: 0,
		},
		{
			name:     "unknown labels contribute nothing",
			items:    []Item{{Labels: []string{"bug", "documentation"}}},
			expected: 0,
		},
		{
			name:     "one label per tier",
			items:    []Item{{Labels: []string{"level1"}}, {Labels: []string{"level2"}}, {Labels: []string{"level3"}}},
			expected: 80,
		},
		{
			name:     "lookup is case-insensitive",
			items:    []Item{{Labels: []string{"Level3"}}, {Labels: []string{"LEVEL1"}}},
			expected: 55,
		},
		{
			// An item carrying several tier labels accumulates all of them.
			name:     "multiple tier labels on one item all count",
			items:    []Item{{Labels: []string{"level1", "level2"}}},
			expected: 35,
		},
		{
			name: "mixed collection",
			items: []Item{
				{Labels: []string{"level1", "gssoc-ext"}},
				{Labels: []string{"level2"}},
				{Labels: []string{"enhancement"}},
			},
			expected: 35,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Score(tc.items))
		})
	}
}

func TestMeanScore(t *testing.T) {
	assert.Zero(t, MeanScore(nil))
	assert.InDelta(t, 27.5, MeanScore([]Item{
		{Labels: []string{"level1"}},
		{Labels: []string{"level3"}},
	}), 1e-9)
}

func TestFilterByLabel(t *testing.T) {
	items := []Item{
		{Title: "a", Labels: []string{"GSSoC-Ext", "level1"}},
		{Title: "b", Labels: []string{"level2"}},
		{Title: "c", Labels: []string{"gssoc-ext"}},
	}

	filtered := FilterByLabel(items, "gssoc-ext")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].Title)
	assert.Equal(t, "c", filtered[1].Title)
	assert.Empty(t, FilterByLabel(items, "level3"))
}

func TestHasLabel(t *testing.T) {
	item := Item{Labels: []string{"Level1"}}

	assert.True(t, HasLabel(item, "level1"))
	assert.False(t, HasLabel(item, "level2"))
	assert.False(t, HasLabel(Item{}, "level1"))
}
