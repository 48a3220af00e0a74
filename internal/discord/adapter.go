package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"rockbot/internal/bot"
	"rockbot/internal/images"
	"rockbot/internal/providers"
	"rockbot/internal/structures"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/atomic"
)

const (
	imageFileName   = "rock.jpg"
	nameCachePrefix = "discord:user:"
	handleTimeout   = 30 * time.Second
)

// messenger is the part of *discordgo.Session the adapter talks to.
type messenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelFileSend(channelID, name string, r io.Reader, options ...discordgo.RequestOption) (*discordgo.Message, error)
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

type AdapterInterface interface {
	Start() error
	Stop()
}

// Adapter connects the command dispatcher to a Discord bot account.
type Adapter struct {
	conf       *structures.Config
	dispatcher *bot.Dispatcher
	fetcher    images.FetcherInterface
	cache      providers.CacheProviderInterface
	logger     providers.Logger
	session    *discordgo.Session
	out        messenger
	appOwner   *atomic.String
}

func NewAdapter(conf *structures.Config, dispatcher *bot.Dispatcher, fetcher images.FetcherInterface, cache providers.CacheProviderInterface, logger providers.Logger) (AdapterInterface, error) {
	a := &Adapter{
		conf:       conf,
		dispatcher: dispatcher,
		fetcher:    fetcher,
		cache:      cache,
		logger:     logger,
		appOwner:   atomic.NewString(""),
	}
	if !conf.Bot.Enabled {
		return a, nil
	}

	session, err := discordgo.New("Bot " + conf.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent
	session.AddHandler(a.onReady)
	session.AddHandler(a.onMessageCreate)

	a.session = session
	a.out = session
	dispatcher.SetNameResolver(a)
	return a, nil
}

func (a *Adapter) Start() error {
	if a.session == nil {
		a.logger.Infof(providers.TypeBot, "Discord bot disabled")
		return nil
	}
	if err := a.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	if app, err := a.session.Application("@me"); err == nil && app.Owner != nil {
		a.appOwner.Store(app.Owner.ID)
	} else if err != nil {
		a.logger.Warnf(providers.TypeBot, "Unable to look up application owner: %s", err)
	}
	return nil
}

func (a *Adapter) Stop() {
	if a.session != nil {
		_ = a.session.Close()
	}
}

func (a *Adapter) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	a.logger.Infof(providers.TypeBot, "Logged in as %s (ID: %s)", r.User.Username, r.User.ID)
}

func (a *Adapter) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()
	a.handle(ctx, m.Message)
}

func (a *Adapter) handle(ctx context.Context, m *discordgo.Message) {
	if m == nil || m.Author == nil || m.Author.Bot {
		return
	}
	replies := a.dispatcher.Handle(ctx, bot.Message{
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		Content:   m.Content,
		IsOwner:   a.isOwner(m.Author.ID),
	})
	a.deliver(ctx, m.ChannelID, replies)
}

func (a *Adapter) isOwner(userID string) bool {
	return a.conf.IsOwner(userID) || (userID != "" && userID == a.appOwner.Load())
}

// deliver sends replies in order. Images are uploaded as files; a failed
// download is reported in the channel with its status and URL.
func (a *Adapter) deliver(ctx context.Context, channelID string, replies []bot.Reply) {
	for _, r := range replies {
		if r.Text != "" {
			if _, err := a.out.ChannelMessageSend(channelID, r.Text); err != nil {
				a.logger.Errorf(providers.TypeBot, "Send to %s failed: %s", channelID, err)
			}
		}
		if r.ImageURL == "" {
			continue
		}
		data, err := a.fetcher.Fetch(ctx, r.ImageURL)
		if err != nil {
			status := 0
			var fe *images.FetchError
			if errors.As(err, &fe) {
				status = fe.Status
			}
			_, _ = a.out.ChannelMessageSend(channelID, fmt.Sprintf("(Image download failed, status %d) %s", status, r.ImageURL))
			continue
		}
		if _, err := a.out.ChannelFileSend(channelID, imageFileName, bytes.NewReader(data)); err != nil {
			a.logger.Errorf(providers.TypeBot, "Upload to %s failed: %s", channelID, err)
		}
	}
}

// DisplayName resolves a user id to a username, falling back to "User <id>".
func (a *Adapter) DisplayName(_ context.Context, userID string) string {
	key := nameCachePrefix + userID
	if name, ok := a.cache.Get(key); ok {
		return string(name)
	}
	u, err := a.out.User(userID)
	if err != nil || u == nil || u.Username == "" {
		return "User " + userID
	}
	a.cache.Set(key, []byte(u.Username))
	return u.Username
}
