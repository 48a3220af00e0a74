// Package bot turns chat messages into round, stats and catalog operations.
// It knows nothing about a particular chat platform.
package bot

import (
	"context"
	"errors"
	"rockbot/internal/catalog"
	"rockbot/internal/providers"
	"rockbot/internal/services"
	"rockbot/internal/structures"
	"slices"
	"strings"
	"unicode"
)

// Message is an incoming chat line.
type Message struct {
	ChannelID string
	AuthorID  string
	Content   string
	IsOwner   bool
}

// Reply is one outgoing message. ImageURL asks the host to upload the image.
type Reply struct {
	Text     string
	ImageURL string
}

type NameResolver interface {
	DisplayName(ctx context.Context, userID string) string
}

type fallbackNames struct{}

func (fallbackNames) DisplayName(_ context.Context, userID string) string {
	return "User " + userID
}

type handlerFunc func(ctx context.Context, msg Message, args string) []Reply

type Dispatcher struct {
	prefixes []string
	rounds   services.RoundServiceInterface
	stats    services.StatsServiceInterface
	catalog  catalog.CatalogInterface
	names    NameResolver
	logger   providers.Logger
	commands map[string]handlerFunc
}

func NewDispatcher(conf *structures.Config, rounds services.RoundServiceInterface, stats services.StatsServiceInterface, rocks catalog.CatalogInterface, logger providers.Logger) *Dispatcher {
	prefixes := slices.Clone(conf.Bot.Prefixes)
	if len(prefixes) == 0 {
		prefixes = []string{"r.", "R."}
	}
	// longest first so "rock." wins over "r."
	slices.SortStableFunc(prefixes, func(a, b string) int { return len(b) - len(a) })

	d := &Dispatcher{
		prefixes: prefixes,
		rounds:   rounds,
		stats:    stats,
		catalog:  rocks,
		names:    fallbackNames{},
		logger:   logger,
	}
	d.commands = map[string]handlerFunc{
		"r":           d.showRock,
		"p":           d.showRock,
		"c":           d.answer,
		"h":           d.hint,
		"hint":        d.hint,
		"q":           d.quit,
		"quit":        d.quit,
		"stats":       d.userStats,
		"lb":          d.leaderboard,
		"leaderboard": d.leaderboard,
		"reload":      d.reload,
		"help":        d.help,
	}
	return d
}

func (d *Dispatcher) SetNameResolver(names NameResolver) {
	if names != nil {
		d.names = names
	}
}

// Handle runs the command in msg. It returns nil for anything that is not a
// known command.
func (d *Dispatcher) Handle(ctx context.Context, msg Message) []Reply {
	name, args, ok := d.parse(msg.Content)
	if !ok {
		return nil
	}
	handler, ok := d.commands[name]
	if !ok {
		d.logger.Debugf(providers.TypeBot, "Unknown command %q in channel %s", name, msg.ChannelID)
		return nil
	}
	d.logger.Debugf(providers.TypeBot, "Command %s from %s in channel %s", name, msg.AuthorID, msg.ChannelID)
	return handler(ctx, msg, args)
}

func (d *Dispatcher) parse(content string) (name, args string, ok bool) {
	for _, p := range d.prefixes {
		rest, found := strings.CutPrefix(content, p)
		if !found {
			continue
		}
		name, args = rest, ""
		if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
			name, args = rest[:i], rest[i:]
		}
		if name == "" {
			return "", "", false
		}
		return strings.ToLower(name), strings.TrimSpace(args), true
	}
	return "", "", false
}

func (d *Dispatcher) showRock(_ context.Context, msg Message, _ string) []Reply {
	view, err := d.rounds.StartOrRepeat(msg.ChannelID)
	if errors.Is(err, services.ErrEmptyCatalog) {
		return text(msgEmptyCatalog)
	}
	if err != nil {
		d.logger.Errorf(providers.TypeBot, "Start round failed in channel %s: %s", msg.ChannelID, err)
		return nil
	}
	return []Reply{
		{Text: d.roundHeader(view.Header)},
		{ImageURL: view.Image},
	}
}

func (d *Dispatcher) answer(ctx context.Context, msg Message, guess string) []Reply {
	if _, ok := d.rounds.Current(msg.ChannelID); !ok {
		return text(d.noRoundAnswer())
	}
	if guess == "" {
		return text(d.usageAnswer())
	}

	res, err := d.rounds.Answer(ctx, msg.ChannelID, msg.AuthorID, guess)
	if errors.Is(err, services.ErrNoActiveRound) {
		return text(d.noRoundAnswer())
	}
	if err != nil {
		d.logger.Errorf(providers.TypeBot, "Answer failed in channel %s: %s", msg.ChannelID, err)
		return nil
	}
	return []Reply{
		{Text: d.answerText(msg.AuthorID, guess, res)},
		{ImageURL: res.Image},
	}
}

func (d *Dispatcher) hint(_ context.Context, msg Message, _ string) []Reply {
	props, err := d.rounds.Hint(msg.ChannelID)
	if err != nil {
		return text(d.noRoundHint())
	}
	return text(hintText(props))
}

func (d *Dispatcher) quit(_ context.Context, msg Message, _ string) []Reply {
	name, err := d.rounds.Quit(msg.ChannelID)
	if err != nil {
		return text(msgNoRoundQuit)
	}
	return text(d.quitText(name))
}

func (d *Dispatcher) userStats(_ context.Context, msg Message, _ string) []Reply {
	s, ok := d.stats.Get(msg.AuthorID)
	if !ok {
		return text(d.noStatsYet())
	}
	return text(statsText(msg.AuthorID, s))
}

func (d *Dispatcher) leaderboard(ctx context.Context, _ Message, args string) []Reply {
	mode := strings.ToLower(firstField(args))
	rows, err := d.stats.Rank(mode, services.DefaultLeaderboardLimit)
	switch {
	case errors.Is(err, services.ErrNoStats):
		return text(msgNoStatsAtAll)
	case errors.Is(err, services.ErrNotEnoughData):
		return text(msgNotEnoughData)
	case err != nil:
		d.logger.Errorf(providers.TypeBot, "Leaderboard failed: %s", err)
		return nil
	}

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = d.names.DisplayName(ctx, r.UserID)
	}
	return text(leaderboardText(mode, rows, names))
}

func (d *Dispatcher) reload(ctx context.Context, msg Message, _ string) []Reply {
	if !msg.IsOwner {
		d.logger.Warnf(providers.TypeBot, "Reload refused for non-owner %s", msg.AuthorID)
		return nil
	}
	count, err := d.catalog.Reload(ctx)
	if err != nil {
		d.logger.Warnf(providers.TypeBot, "Reload by %s kept previous catalog: %s", msg.AuthorID, err)
	}
	return text(reloadText(count))
}

func (d *Dispatcher) help(_ context.Context, _ Message, _ string) []Reply {
	return text(d.helpText())
}

func text(s string) []Reply {
	return []Reply{{Text: s}}
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
