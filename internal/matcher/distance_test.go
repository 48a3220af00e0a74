package matcher

import (
	"testing"

	"github.com/adrg/strutil/metrics"
	"github.com/stretchr/testify/assert"
)

func TestDistance_Known(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"bornit", "bornite", 1},
		{"obsidain", "obsidian", 2},
		{"flaw", "lawn", 2},
		{"quartz", "quartz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
		})
	}
}

func TestDistance_Properties(t *testing.T) {
	words := []string{"", "a", "rose", "rosequartz", "bornite", "peacockore", "obsidian", "volcanicglass", "xx"}
	for _, a := range words {
		assert.Equal(t, 0, Distance(a, a))
		assert.Equal(t, len(a), Distance("", a))
		for _, b := range words {
			assert.Equal(t, Distance(a, b), Distance(b, a), "%q vs %q", a, b)
		}
	}
}

func TestDistance_MatchesReferenceImplementation(t *testing.T) {
	ref := metrics.NewLevenshtein()
	words := []string{"bornite", "bornit", "rosequartz", "quartz", "rockcrystal", "obsidian", "obsidain", "sulfide", "pyrite", "pirite", "galena"}
	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, ref.Distance(a, b), Distance(a, b), "%q vs %q", a, b)
		}
	}
}
