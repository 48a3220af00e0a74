package services

import (
	"context"
	"math/rand/v2"
	"rockbot/internal/catalog"
	"rockbot/internal/matcher"
	"rockbot/internal/models"
	"rockbot/internal/providers"

	"github.com/google/uuid"
)

const (
	HeaderNewRound = "Here you go! New rock for this channel."
	HeaderRepeat   = "Another view of the same rock."

	RoundEventStart  = "start"
	RoundEventRepeat = "repeat"
	RoundEventAnswer = "answer"
	RoundEventQuit   = "quit"
)

// RoundView is what a start-or-repeat shows the channel.
type RoundView struct {
	Header  string    `json:"header"`
	Image   string    `json:"image"`
	New     bool      `json:"new"`
	RoundID uuid.UUID `json:"round_id"`
}

// AnswerResult is the outcome of the single answer a round accepts.
type AnswerResult struct {
	Correct      bool             `json:"correct"`
	RevealedName string           `json:"revealed_name"`
	Image        string           `json:"image"`
	Stats        models.UserStats `json:"stats"`
}

type RoundServiceInterface interface {
	StartOrRepeat(channel string) (RoundView, error)
	Answer(ctx context.Context, channel, userID, guess string) (AnswerResult, error)
	Hint(channel string) ([]models.HintProperty, error)
	Quit(channel string) (string, error)
	Current(channel string) (models.RoundState, bool)
	ActiveRounds() int
}

// RoundService runs one round per channel on top of the catalog and the
// stats service.
type RoundService struct {
	rounds  *models.RoundStore
	catalog catalog.CatalogInterface
	stats   StatsServiceInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	intn    func(n int) int
}

func NewRoundService(rocks catalog.CatalogInterface, stats StatsServiceInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) RoundServiceInterface {
	return &RoundService{
		rounds:  models.NewRoundStore(),
		catalog: rocks,
		stats:   stats,
		logger:  logger,
		metrics: metrics,
		intn:    rand.IntN,
	}
}

// StartOrRepeat starts a round on a random rock, or shows another image of
// the running one without repeating the image on screen.
func (s *RoundService) StartOrRepeat(channel string) (RoundView, error) {
	var view RoundView
	err := s.rounds.Update(channel, func(cur *models.RoundState) (*models.RoundState, error) {
		if cur != nil {
			next := *cur
			next.Image = s.chooseImage(cur.Entry.Images, cur.Image)
			view = RoundView{Header: HeaderRepeat, Image: next.Image, RoundID: next.ID}
			return &next, nil
		}

		entries := s.catalog.Entries()
		if len(entries) == 0 {
			return nil, ErrEmptyCatalog
		}
		entry := entries[s.intn(len(entries))]
		next := models.NewRoundState(entry, s.chooseImage(entry.Images, ""))
		view = RoundView{Header: HeaderNewRound, Image: next.Image, New: true, RoundID: next.ID}
		return next, nil
	})
	if err != nil {
		return RoundView{}, err
	}

	if view.New {
		s.metrics.IncRounds(RoundEventStart)
		s.logger.Debugf(providers.TypeGame, "Round %s started in channel %s", view.RoundID, channel)
	} else {
		s.metrics.IncRounds(RoundEventRepeat)
	}
	return view, nil
}

// Answer scores the guess, records it for the user and ends the round,
// all under the channel lock.
func (s *RoundService) Answer(ctx context.Context, channel, userID, guess string) (AnswerResult, error) {
	var res AnswerResult
	err := s.rounds.Update(channel, func(cur *models.RoundState) (*models.RoundState, error) {
		if cur == nil {
			return nil, ErrNoActiveRound
		}
		res.Correct = matcher.IsCorrect(guess, cur.Entry)
		res.RevealedName = cur.Entry.Name
		res.Image = cur.Image
		res.Stats = s.stats.Record(ctx, userID, res.Correct)
		return nil, nil
	})
	if err != nil {
		return AnswerResult{}, err
	}

	s.metrics.IncRounds(RoundEventAnswer)
	s.metrics.IncGuesses(res.Correct)
	s.logger.Debugf(providers.TypeGame, "Channel %s answered by %s: correct=%t", channel, userID, res.Correct)
	return res, nil
}

func (s *RoundService) Hint(channel string) ([]models.HintProperty, error) {
	cur, ok := s.rounds.Get(channel)
	if !ok {
		return nil, ErrNoActiveRound
	}
	return cur.Entry.Hint(), nil
}

// Quit ends the round without touching stats and returns the answer.
func (s *RoundService) Quit(channel string) (string, error) {
	var name string
	err := s.rounds.Update(channel, func(cur *models.RoundState) (*models.RoundState, error) {
		if cur == nil {
			return nil, ErrNoActiveRound
		}
		name = cur.Entry.Name
		return nil, nil
	})
	if err != nil {
		return "", err
	}
	s.metrics.IncRounds(RoundEventQuit)
	return name, nil
}

func (s *RoundService) Current(channel string) (models.RoundState, bool) {
	return s.rounds.Get(channel)
}

func (s *RoundService) ActiveRounds() int {
	return s.rounds.Active()
}

func (s *RoundService) chooseImage(images []string, exclude string) string {
	if len(images) == 0 {
		return ""
	}
	if exclude != "" && len(images) > 1 {
		options := make([]string, 0, len(images))
		for _, img := range images {
			if img != exclude {
				options = append(options, img)
			}
		}
		if len(options) > 0 {
			return options[s.intn(len(options))]
		}
	}
	return images[s.intn(len(images))]
}
