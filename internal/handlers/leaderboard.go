package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

type Leaderboard struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewLeaderboard(logger *slog.Logger, db *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{
		logger: logger,
		repo:   repository.New(db),
	}
}

func (l Leaderboard) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter repository.LeaderboardFilter
	if username := query.Get("username"); username != "" {
		filter.Username = &username
	}
	if seed := query.Get("seed"); seed != "" {
		params, err := mines.ParseSeed(seed)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, l.logger, wrapError(err))
			return
		}
		filter.GameParams = params
	}

	rows, err := l.repo.GetLeaderboard(r.Context(), filter)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		l.logger.Error("unable to fetch leaderboard", "error", err)
		return
	}

	sendJSONOrLog(w, l.logger, rows)
}
