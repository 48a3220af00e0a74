package bot

import (
	"context"
	"fmt"
	"rockbot/internal/catalog"
	"rockbot/internal/models"
	"rockbot/internal/services"
	"rockbot/internal/structures"
	"rockbot/internal/testutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNames map[string]string

func (n staticNames) DisplayName(_ context.Context, userID string) string {
	if name, ok := n[userID]; ok {
		return name
	}
	return "User " + userID
}

type fixture struct {
	d      *Dispatcher
	stats  services.StatsServiceInterface
	feed   *testutil.MockFeed
	rocks  catalog.CatalogInterface
	logger *testutil.MockLogger
}

func rose() models.RockEntry {
	return models.RockEntry{
		ID:      2,
		Name:    "Rose Quartz",
		Aliases: []string{"Rock crystal"},
		Images:  []string{"https://img/rq.jpg"},
		Properties: map[string]string{
			models.PropHardness: "7",
			models.PropLuster:   "Vitreous",
			models.PropStreak:   "White",
			models.PropCategory: "Silicate (Quartz)",
		},
	}
}

func newFixture(t *testing.T, entries ...models.RockEntry) *fixture {
	t.Helper()
	conf := &structures.Config{Bot: structures.BotConfig{Prefixes: []string{"r.", "R."}}}
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}
	feed := &testutil.MockFeed{Entries: entries}
	rocks := catalog.NewCatalog(conf, feed, logger, metrics)
	if len(entries) > 0 {
		_, err := rocks.Reload(context.Background())
		require.NoError(t, err)
	}
	stats := services.NewStatsService(&testutil.MockStatsStore{}, logger, metrics)
	rounds := services.NewRoundService(rocks, stats, logger, metrics)
	return &fixture{
		d:      NewDispatcher(conf, rounds, stats, rocks, logger),
		stats:  stats,
		feed:   feed,
		rocks:  rocks,
		logger: logger,
	}
}

func (f *fixture) send(content string) []Reply {
	return f.d.Handle(context.Background(), Message{ChannelID: "chan", AuthorID: "42", Content: content})
}

func (f *fixture) sendAs(author, content string, owner bool) []Reply {
	return f.d.Handle(context.Background(), Message{ChannelID: "chan", AuthorID: author, Content: content, IsOwner: owner})
}

func TestDispatcher_IgnoresNonCommands(t *testing.T) {
	f := newFixture(t, rose())
	for _, content := range []string{"hello", "r. r", "r.", "x.r", "r.unknown", ""} {
		assert.Nil(t, f.send(content), content)
	}
}

func TestDispatcher_PrefixAndCommandAreCaseInsensitive(t *testing.T) {
	f := newFixture(t, rose())
	replies := f.send("R.R")
	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "New rock for this channel")
}

func TestDispatcher_EmptyCatalog(t *testing.T) {
	f := newFixture(t)
	replies := f.send("r.r")
	require.Len(t, replies, 1)
	assert.Equal(t, msgEmptyCatalog, replies[0].Text)
}

func TestDispatcher_FullRound(t *testing.T) {
	f := newFixture(t, rose())

	replies := f.send("r.r")
	require.Len(t, replies, 2)
	assert.Equal(t, "**Here you go! New rock for this channel.**  (Use `r.help` for commands.)", replies[0].Text)
	assert.Equal(t, "https://img/rq.jpg", replies[1].ImageURL)

	replies = f.send("r.p")
	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "Another view of the same rock.")

	replies = f.send("r.h")
	require.Len(t, replies, 1)
	assert.Equal(t, "Hint for this channel:\n"+
		"• Hardness: 7\n"+
		"• Luster: Vitreous\n"+
		"• Streak: White\n"+
		"• Category: Silicate (Quartz)\n"+
		"• Density: Unknown", replies[0].Text)

	replies = f.send("r.c  quartz ")
	require.Len(t, replies, 2)
	assert.Equal(t, "✅ Correct! <@42> got it.\nIt was **Rose Quartz**.\nUse `r.r` for a new rock in this channel.", replies[0].Text)
	assert.Equal(t, "https://img/rq.jpg", replies[1].ImageURL)

	replies = f.send("r.hint")
	assert.Equal(t, "No active rock in this channel. Use `r.r` first.", replies[0].Text)
}

func TestDispatcher_IncorrectAnswer(t *testing.T) {
	f := newFixture(t, rose())
	f.send("r.r")

	replies := f.send("r.c granite")
	require.Len(t, replies, 2)
	assert.Equal(t, "❌ Incorrect, <@42>.\nYour guess: `granite`\nCorrect answer: **Rose Quartz**.\nUse `r.r` for a new rock in this channel.", replies[0].Text)

	s, ok := f.stats.Get("42")
	require.True(t, ok)
	assert.Equal(t, 1, s.Total)
}

func TestDispatcher_AnswerWithoutGuessKeepsRound(t *testing.T) {
	f := newFixture(t, rose())

	replies := f.send("r.c")
	assert.Equal(t, "No active rock in this channel. Use `r.r` to start one.", replies[0].Text)

	f.send("r.r")
	replies = f.send("r.c   ")
	assert.Equal(t, "Usage: `r.c <guess>`", replies[0].Text)

	replies = f.send("r.c rose quartz")
	assert.Contains(t, replies[0].Text, "Correct!")
}

func TestDispatcher_Quit(t *testing.T) {
	f := newFixture(t, rose())
	assert.Equal(t, msgNoRoundQuit, f.send("r.q")[0].Text)

	f.send("r.r")
	replies := f.send("r.quit")
	assert.Equal(t, "🛑 Round ended. The correct answer was **Rose Quartz**.\nUse `r.r` to start a new rock for this channel.", replies[0].Text)
	_, ok := f.stats.Get("42")
	assert.False(t, ok)
}

func TestDispatcher_Stats(t *testing.T) {
	f := newFixture(t, rose())
	assert.Equal(t, "You don't have any stats yet. Play with `r.r` and `r.c`!", f.send("r.stats")[0].Text)

	for _, guess := range []string{"quartz", "quartz", "basalt", "rock crystal"} {
		f.send("r.r")
		f.send("r.c " + guess)
	}
	assert.Equal(t, "📊 Stats for <@42>:\n"+
		"- Total guesses: **4**\n"+
		"- Correct guesses: **3**\n"+
		"- Accuracy: **75.0%**\n"+
		"- Current streak: **1**\n"+
		"- Best streak: **2**", f.send("r.stats")[0].Text)
}

func TestDispatcher_Leaderboard(t *testing.T) {
	f := newFixture(t, rose())
	f.d.SetNameResolver(staticNames{"1": "alice"})

	assert.Equal(t, msgNoStatsAtAll, f.send("r.lb")[0].Text)

	play := func(user, guess string) {
		f.sendAs(user, "r.r", false)
		f.sendAs(user, "r.c "+guess, false)
	}
	play("1", "quartz")
	play("1", "quartz")
	play("2", "quartz")

	lb := f.send("r.lb")[0].Text
	assert.Equal(t, "🏆 **Leaderboard – Most Correct Answers**\n"+
		"1. **alice** — 2 correct / 2 total (100.0% acc, best streak 2)\n"+
		"2. **User 2** — 1 correct / 1 total (100.0% acc, best streak 1)", lb)

	streak := f.send("r.leaderboard STREAK")[0].Text
	assert.True(t, strings.HasPrefix(streak, "🔥 **Leaderboard – Best Streaks**\n1. **alice** — best streak 2"))

	assert.Equal(t, msgNotEnoughData, f.send("r.lb acc")[0].Text)

	for i := 0; i < 8; i++ {
		play("2", "quartz")
	}
	play("2", "granite")
	acc := f.send("r.lb acc")[0].Text
	assert.Equal(t, "🏆 **Leaderboard – Accuracy** (min 10 guesses)\n"+
		"1. **User 2** — 90.0% acc (9/10, best streak 9)", acc)
}

func TestDispatcher_ReloadOwnerOnly(t *testing.T) {
	f := newFixture(t, rose())
	f.feed.Entries = append(f.feed.Entries, models.RockEntry{ID: 9, Name: "Galena", Images: []string{"https://img/g.jpg"}})

	assert.Nil(t, f.sendAs("7", "r.reload", false))
	assert.Equal(t, 1, f.rocks.Len())
	assert.True(t, f.logger.Contains("warn", "non-owner 7"))

	replies := f.sendAs("7", "r.reload", true)
	assert.Equal(t, "Reloaded rocks from the feed. Now have **2** entries.", replies[0].Text)
}

func TestDispatcher_ReloadFailureReportsCurrentCount(t *testing.T) {
	f := newFixture(t, rose())
	f.feed.Err = fmt.Errorf("status 500")

	replies := f.sendAs("7", "r.reload", true)
	assert.Equal(t, "Reloaded rocks from the feed. Now have **1** entries.", replies[0].Text)
}

func TestDispatcher_Help(t *testing.T) {
	f := newFixture(t, rose())
	help := f.send("r.help")[0].Text
	assert.True(t, strings.HasPrefix(help, "**Rock & Roll Commands (per channel):**"))
	for _, c := range []string{"`r.r`", "`r.c <guess>`", "`r.hint`", "`r.lb streak`", "`r.reload`"} {
		assert.Contains(t, help, c)
	}
}

func TestDispatcher_CustomPrefix(t *testing.T) {
	conf := &structures.Config{Bot: structures.BotConfig{Prefixes: []string{"!rock "}}}
	f := newFixture(t, rose())
	d := NewDispatcher(conf, nil, f.stats, f.rocks, f.logger)
	assert.Contains(t, d.helpText(), "`!rock stats`")
	name, args, ok := d.parse("!rock lb acc")
	require.True(t, ok)
	assert.Equal(t, "lb", name)
	assert.Equal(t, "acc", args)
}
