package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
	"github.com/vancomm/minesweeper-agent/internal/repository"
)

type GameMove int

const (
	Open GameMove = iota
	Flag
)

func ParseGameMove(s string) (GameMove, error) {
	switch s {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	default:
		return 0, fmt.Errorf("unsupported move %q", s)
	}
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func newQueryDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := newQueryDecoder().Decode(&pos, src)
	return pos, err
}

func ParseGameParams(src map[string][]string) (mines.GameParams, error) {
	var params mines.GameParams
	err := newQueryDecoder().Decode(&params, src)
	return params, err
}

/*
GameSessionDTO is the wire shape of a game session. Grid is the player
view rendered as rows of cell glyphs. SafeCells and MineCells carry
what the deduction engine can prove from the open squares; they are
omitted for finished games.
*/
type GameSessionDTO struct {
	GameSessionId string           `json:"game_session_id"`
	Grid          []string         `json:"grid"`
	Width         int              `json:"width"`
	Height        int              `json:"height"`
	MineCount     int              `json:"mine_count"`
	Dead          bool             `json:"dead"`
	Won           bool             `json:"won"`
	Moves         int              `json:"moves"`
	Guesses       int              `json:"guesses"`
	SafeCells     []knowledge.Cell `json:"safe_cells,omitempty"`
	MineCells     []knowledge.Cell `json:"mine_cells,omitempty"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
}

func gridRows(g mines.Grid, width int) []string {
	rows := make([]string, 0, len(g)/width)
	for y := 0; y < len(g)/width; y++ {
		var row string
		for x := 0; x < width; x++ {
			row += g[y*width+x].String()
		}
		rows = append(rows, row)
	}
	return rows
}

func NewGameSessionDTO(
	session *repository.GameSession,
	game *mines.GameState,
	eng *knowledge.Engine,
) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionId, 10),
		Grid:          gridRows(game.Player, game.Width),
		Width:         game.Width,
		Height:        game.Height,
		MineCount:     game.MineCount,
		Dead:          game.Dead,
		Won:           game.Won,
		Moves:         session.Moves,
		Guesses:       session.Guesses,
		StartedAt:     timestamptzToMillis(session.StartedAt),
	}
	if session.EndedAt.Valid {
		e := timestamptzToMillis(session.EndedAt)
		dto.EndedAt = &e
	}
	if eng != nil && !game.Dead && !game.Won {
		dto.SafeCells = eng.SafeCells()
		dto.MineCells = eng.MineCells()
	}
	return dto
}

func timestamptzToMillis(t pgtype.Timestamptz) int64 {
	if !t.Valid {
		return 0
	}
	return t.Time.UnixMilli()
}
