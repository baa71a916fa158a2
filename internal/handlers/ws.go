package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

// Commands understood over the websocket, mapped to their number of
// arguments:
//
//	g       send current state
//	o x y   open a square
//	f x y   toggle a flag
//	r       forfeit, revealing all mines
//	a       let the agent play the board out
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"r": 0,
	"a": 0,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		return 0, 0, errors.New("first argument must be an int")
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		return 0, 0, errors.New("second argument must be an int")
	}
	return x, y, nil
}

type wsSession struct {
	handler *GameHandler
	session *repository.GameSession
	game    *mines.GameState
	moves   int
	guesses int
}

func (s *wsSession) execute(c string) error {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("command %q takes %d arguments", parts[0], nargs)
	}
	switch parts[0] {
	case "g":
		return nil
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		if !s.game.ValidatePosition(x, y) {
			return errors.New("invalid square coordinates")
		}
		s.game.Open(x, y)
		s.moves++
		return nil
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return err
		}
		if !s.game.ValidatePosition(x, y) {
			return errors.New("invalid square coordinates")
		}
		s.game.FlagCell(x, y)
		return nil
	case "r":
		s.game.RevealMines()
		return nil
	case "a":
		if s.game.Dead || s.game.Won {
			return errors.New("game is over")
		}
		a, err := agent.Resume(s.game, s.handler.rnd)
		if err != nil {
			return err
		}
		res, err := a.Play(s.game, nil)
		if err != nil {
			return err
		}
		s.moves += res.Moves
		s.guesses += res.Guesses
		return nil
	}
	return errors.New("invalid command")
}

func (s *wsSession) save(r *http.Request) error {
	b, err := s.game.Bytes()
	if err != nil {
		return err
	}

	moves := s.session.Moves + s.moves
	guesses := s.session.Guesses + s.guesses
	params := repository.UpdateGameSessionParams{
		State:   &b,
		Dead:    &s.game.Dead,
		Won:     &s.game.Won,
		Moves:   &moves,
		Guesses: &guesses,
	}
	if (s.game.Dead || s.game.Won) && !s.session.EndedAt.Valid {
		endedAt := time.Now().UTC()
		params.EndedAt = &endedAt
	}

	updated, err := s.handler.repo.UpdateGameSession(
		r.Context(), s.session.GameSessionId, params,
	)
	if err != nil {
		return err
	}
	s.session = updated
	s.moves, s.guesses = 0, 0
	return nil
}

// ConnectWS upgrades the request and serves newline-separated game
// commands until the client hangs up. Every message gets the full
// session state back.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game := g.fetchSession(w, r)
	if session == nil {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	s := &wsSession{handler: &g, session: session, game: game}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("websocket read", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		for _, cmd := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			if err := s.execute(cmd); err != nil {
				if werr := c.WriteJSON(wrapError(err)); werr != nil {
					g.logger.Error("websocket write", "error", werr)
					return
				}
				continue
			}
			if s.game.Won || s.game.Dead {
				s.game.RevealMines()
				break
			}
		}

		if err := s.save(r); err != nil {
			g.logger.Error("unable to persist session", "error", err)
			break
		}
		if err := c.WriteJSON(NewGameSessionDTO(s.session, s.game, g.deductions(s.game))); err != nil {
			g.logger.Error("websocket write", "error", err)
			break
		}
	}
}
