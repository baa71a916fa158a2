package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/config"
	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/middleware"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}
}

func sessionId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// fetchSession loads a session row and decodes its board. A nil
// session means the response is already written.
func (g GameHandler) fetchSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *mines.GameState) {
	id, err := sessionId(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil
	}

	session, err := g.repo.FetchGameSession(r.Context(), id)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to fetch session from db", "error", err)
		return nil, nil
	}

	game, err := session.GameState()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return nil, nil
	}

	return session, game
}

// deductions rebuilds the engine for a board so responses can include
// proven safe and mine squares. Engines are not stored; the open
// squares are enough to get identical knowledge back.
func (g GameHandler) deductions(game *mines.GameState) *knowledge.Engine {
	if game.Dead || game.Won {
		return nil
	}
	eng, err := agent.Rebuild(game)
	if err != nil {
		g.logger.Warn("board replay hit a contradiction", "error", err)
		return nil
	}
	return eng
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	gameParams, err := ParseGameParams(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err := gameParams.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if !gameParams.ValidatePosition(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid cell position")))
		return
	}

	game, _, err := mines.NewGame(&gameParams, pos.X, pos.Y, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to generate a new game", "error", err)
		return
	}

	params := repository.CreateGameSessionParams{}
	if claims, loggedIn := middleware.PlayerClaims(r); loggedIn {
		params.PlayerId = &claims.PlayerId
	}

	session, err := g.repo.CreateGameSession(r.Context(), game, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, g.deductions(game)))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game, g.deductions(game)))
}

// saveAndSend persists the board back into its session row and writes
// the session DTO.
func (g GameHandler) saveAndSend(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, game *mines.GameState,
	params repository.UpdateGameSessionParams,
) {
	b, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return
	}
	params.State = &b
	params.Dead = &game.Dead
	params.Won = &game.Won

	if (game.Dead || game.Won) && !session.EndedAt.Valid {
		endedAt := time.Now().UTC()
		params.EndedAt = &endedAt
	}

	updated, err := g.repo.UpdateGameSession(r.Context(), session.GameSessionId, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(updated, game, g.deductions(game)))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}

	if !game.ValidatePosition(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	params := repository.UpdateGameSessionParams{}
	switch move {
	case Open:
		game.Open(pos.X, pos.Y)
		moves := session.Moves + 1
		params.Moves = &moves
	case Flag:
		game.FlagCell(pos.X, pos.Y)
	}

	if game.Won || game.Dead {
		game.RevealMines()
	}

	g.saveAndSend(w, r, session, game, params)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}

	game.RevealMines()

	g.saveAndSend(w, r, session, game, repository.UpdateGameSessionParams{})
}

type HintDTO struct {
	Cell *knowledge.Cell `json:"cell"`
	Safe bool            `json:"safe"`
}

// Hint suggests the next square to open: a provably safe one when the
// engine has one, otherwise a random untouched square that is not a
// known mine.
func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}

	if game.Dead || game.Won {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("game is over")))
		return
	}

	a, err := agent.Resume(game, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("board replay hit a contradiction", "error", err)
		return
	}

	if cell, ok := a.SafeMove(); ok {
		sendJSONOrLog(w, g.logger, &HintDTO{Cell: &cell, Safe: true})
		return
	}
	if cell, ok := a.RandomMove(); ok {
		sendJSONOrLog(w, g.logger, &HintDTO{Cell: &cell, Safe: false})
		return
	}
	sendJSONOrLog(w, g.logger, &HintDTO{})
}

// Auto hands the board over to the agent, which plays it to
// completion.
func (g GameHandler) Auto(w http.ResponseWriter, r *http.Request) {
	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}

	if game.Dead || game.Won {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("game is over")))
		return
	}

	a, err := agent.Resume(game, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("board replay hit a contradiction", "error", err)
		return
	}

	res, err := a.Play(game, nil)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("agent aborted", "error", err)
		return
	}

	if game.Won || game.Dead {
		game.RevealMines()
	}

	moves := session.Moves + res.Moves
	guesses := session.Guesses + res.Guesses
	g.saveAndSend(w, r, session, game, repository.UpdateGameSessionParams{
		Moves:   &moves,
		Guesses: &guesses,
	})
}
