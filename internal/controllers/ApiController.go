package controllers

import (
	"errors"
	"net/http"
	"rockbot/internal/catalog"
	"rockbot/internal/images"
	"rockbot/internal/models"
	"rockbot/internal/providers"
	"rockbot/internal/services"
	"rockbot/internal/structures"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/cast"
)

const (
	maxRequestBodySize = 1 << 20 // 1 MB
	ownerHeader        = "X-User-ID"
)

type ApiController struct {
	conf    *structures.Config
	logger  providers.Logger
	rounds  services.RoundServiceInterface
	stats   services.StatsServiceInterface
	catalog catalog.CatalogInterface
	fetcher images.FetcherInterface
}

func NewApiController(conf *structures.Config, logger providers.Logger, rounds services.RoundServiceInterface, stats services.StatsServiceInterface, rocks catalog.CatalogInterface, fetcher images.FetcherInterface) *ApiController {
	return &ApiController{
		conf:    conf,
		logger:  logger,
		rounds:  rounds,
		stats:   stats,
		catalog: rocks,
		fetcher: fetcher,
	}
}

type answerRequest struct {
	UserID string `json:"user_id"`
	Guess  string `json:"guess"`
}

type quitResponse struct {
	RevealedName string `json:"revealed_name"`
}

type leaderboardResponse struct {
	Mode   string                  `json:"mode"`
	Rows   []models.LeaderboardRow `json:"rows"`
	Reason string                  `json:"reason,omitempty"`
}

type reloadResponse struct {
	Entries int    `json:"entries"`
	Error   string `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNoActiveRound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCatalog):
		status = http.StatusServiceUnavailable
	case errors.Is(err, images.ErrImageFetchFailed):
		status = http.StatusBadGateway
	default:
		ac.logger.Errorf(providers.TypeApp, "Request failed: %s", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (ac *ApiController) StartRound(w http.ResponseWriter, r *http.Request) {
	view, err := ac.rounds.StartOrRepeat(param(r, "channel"))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) Answer(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload answerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.UserID == "" || strings.TrimSpace(payload.Guess) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "user_id and guess are required"})
		return
	}

	res, err := ac.rounds.Answer(r.Context(), param(r, "channel"), payload.UserID, payload.Guess)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (ac *ApiController) Hint(w http.ResponseWriter, r *http.Request) {
	hint, err := ac.rounds.Hint(param(r, "channel"))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hint)
}

func (ac *ApiController) Quit(w http.ResponseWriter, r *http.Request) {
	name, err := ac.rounds.Quit(param(r, "channel"))
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quitResponse{RevealedName: name})
}

// Image streams the picture currently shown in the channel.
func (ac *ApiController) Image(w http.ResponseWriter, r *http.Request) {
	cur, ok := ac.rounds.Current(param(r, "channel"))
	if !ok {
		ac.writeError(w, services.ErrNoActiveRound)
		return
	}
	data, err := ac.fetcher.Fetch(r.Context(), cur.Image)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (ac *ApiController) UserStats(w http.ResponseWriter, r *http.Request) {
	s, ok := ac.stats.Get(param(r, "user"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: services.ErrNoStats.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (ac *ApiController) Leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := strings.ToLower(q.Get("mode"))
	if mode != services.LeaderboardAccuracy && mode != services.LeaderboardStreak {
		mode = services.LeaderboardCorrect
	}

	limit := services.DefaultLeaderboardLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	rows, err := ac.stats.Rank(mode, limit)
	resp := leaderboardResponse{Mode: mode, Rows: rows}
	switch {
	case errors.Is(err, services.ErrNoStats), errors.Is(err, services.ErrNotEnoughData):
		resp.Rows = []models.LeaderboardRow{}
		resp.Reason = err.Error()
	case err != nil:
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reload is restricted to the ids listed in bot.owners.
func (ac *ApiController) Reload(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(ownerHeader)
	if !ac.conf.IsOwner(userID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "owner only"})
		return
	}

	count, err := ac.catalog.Reload(r.Context())
	resp := reloadResponse{Entries: count}
	if err != nil {
		resp.Error = err.Error()
	}
	ac.logger.Infof(providers.TypePost, "Catalog reload by %s: %d entries", userID, count)
	writeJSON(w, http.StatusOK, resp)
}
