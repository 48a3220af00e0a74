package bot

import (
	"fmt"
	"rockbot/internal/models"
	"rockbot/internal/services"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	msgEmptyCatalog  = "No rocks are loaded. Ask the bot owner to configure the rock feed URL."
	msgNoRoundQuit   = "No active rock to quit in this channel."
	msgNoStatsAtAll  = "No stats yet. Play some rounds first!"
	msgNotEnoughData = "Not enough data yet (need ≥10 guesses per player)."
)

// cmd renders a command with the primary prefix, e.g. `r.c <guess>`.
func (d *Dispatcher) cmd(name string) string {
	return "`" + d.primaryPrefix() + name + "`"
}

func (d *Dispatcher) primaryPrefix() string {
	// prefixes are sorted by length; prefer the lowercase "r." style one
	for _, p := range d.prefixes {
		if p == strings.ToLower(p) {
			return p
		}
	}
	return d.prefixes[0]
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func percent(s models.UserStats) float64 {
	return s.Accuracy() * 100
}

func (d *Dispatcher) roundHeader(header string) string {
	return fmt.Sprintf("**%s**  (Use %s for commands.)", header, d.cmd("help"))
}

func (d *Dispatcher) noRoundAnswer() string {
	return fmt.Sprintf("No active rock in this channel. Use %s to start one.", d.cmd("r"))
}

func (d *Dispatcher) noRoundHint() string {
	return fmt.Sprintf("No active rock in this channel. Use %s first.", d.cmd("r"))
}

func (d *Dispatcher) usageAnswer() string {
	return "Usage: " + d.cmd("c <guess>")
}

func (d *Dispatcher) noStatsYet() string {
	return fmt.Sprintf("You don't have any stats yet. Play with %s and %s!", d.cmd("r"), d.cmd("c"))
}

func (d *Dispatcher) answerText(userID, guess string, res services.AnswerResult) string {
	if res.Correct {
		return fmt.Sprintf("✅ Correct! %s got it.\nIt was **%s**.\nUse %s for a new rock in this channel.",
			mention(userID), res.RevealedName, d.cmd("r"))
	}
	return fmt.Sprintf("❌ Incorrect, %s.\nYour guess: `%s`\nCorrect answer: **%s**.\nUse %s for a new rock in this channel.",
		mention(userID), guess, res.RevealedName, d.cmd("r"))
}

func (d *Dispatcher) quitText(name string) string {
	return fmt.Sprintf("🛑 Round ended. The correct answer was **%s**.\nUse %s to start a new rock for this channel.",
		name, d.cmd("r"))
}

func hintText(props []models.HintProperty) string {
	lines := make([]string, 0, len(props)+1)
	lines = append(lines, "Hint for this channel:")
	title := cases.Title(language.English)
	for _, p := range props {
		lines = append(lines, fmt.Sprintf("• %s: %s", title.String(p.Name), p.Value))
	}
	return strings.Join(lines, "\n")
}

func statsText(userID string, s models.UserStats) string {
	return fmt.Sprintf("📊 Stats for %s:\n"+
		"- Total guesses: **%d**\n"+
		"- Correct guesses: **%d**\n"+
		"- Accuracy: **%.1f%%**\n"+
		"- Current streak: **%d**\n"+
		"- Best streak: **%d**",
		mention(userID), s.Total, s.Correct, percent(s), s.Streak, s.MaxStreak)
}

func leaderboardText(mode string, rows []models.LeaderboardRow, names []string) string {
	var title string
	switch mode {
	case services.LeaderboardAccuracy:
		title = fmt.Sprintf("🏆 **Leaderboard – Accuracy** (min %d guesses)", services.MinAccuracyAttempts)
	case services.LeaderboardStreak:
		title = "🔥 **Leaderboard – Best Streaks**"
	default:
		title = "🏆 **Leaderboard – Most Correct Answers**"
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, title)
	for i, r := range rows {
		s := r.Stats
		var line string
		switch mode {
		case services.LeaderboardAccuracy:
			line = fmt.Sprintf("%d. **%s** — %.1f%% acc (%d/%d, best streak %d)",
				r.Rank, names[i], percent(s), s.Correct, s.Total, s.MaxStreak)
		case services.LeaderboardStreak:
			line = fmt.Sprintf("%d. **%s** — best streak %d, %d correct out of %d (%.1f%% acc)",
				r.Rank, names[i], s.MaxStreak, s.Correct, s.Total, percent(s))
		default:
			line = fmt.Sprintf("%d. **%s** — %d correct / %d total (%.1f%% acc, best streak %d)",
				r.Rank, names[i], s.Correct, s.Total, percent(s), s.MaxStreak)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func reloadText(count int) string {
	return fmt.Sprintf("Reloaded rocks from the feed. Now have **%d** entries.", count)
}

func (d *Dispatcher) helpText() string {
	return "**Rock & Roll Commands (per channel):**  " +
		d.cmd("r") + "/" + d.cmd("p") + " show or re-show the channel's rock · " +
		d.cmd("c <guess>") + " check and end round · " +
		d.cmd("h") + "/" + d.cmd("hint") + " hint (properties) · " +
		d.cmd("q") + " quit current rock · " +
		d.cmd("stats") + " your stats · " +
		d.cmd("lb") + " leaderboard (" + d.cmd("lb acc") + ", " + d.cmd("lb streak") + ") · " +
		d.cmd("reload") + " reload rocks (bot owner only)"
}
