// Package protocol holds the JSON messages exchanged with a game server.
package protocol

import (
	"errors"
	"fmt"
	"time"

	"github.com/tobz1000/mines/internal/mines"
)

// Action names, appended to the server's base path.
const (
	ActionNew    = "new"
	ActionTurn   = "turn"
	ActionStatus = "status"
)

var ErrMalformed = errors.New("malformed server response")

type NewGameRequest struct {
	Client    string     `json:"client"`
	Seed      *uint64    `json:"seed,omitempty"`
	Dims      mines.Dims `json:"dims"`
	Mines     int        `json:"mines"`
	Autoclear bool       `json:"autoclear"`
}

type TurnRequest struct {
	ID     string         `json:"id"`
	Client string         `json:"client"`
	Clear  []mines.Coords `json:"clear"`
	Flag   []mines.Coords `json:"flag"`
	Unflag []mines.Coords `json:"unflag"`
}

type StatusRequest struct {
	ID string `json:"id" schema:"id,required"`
}

// ServerResponse is the game state returned after every request.
// ClearActual lists the cells revealed by the latest turn.
type ServerResponse struct {
	ID          string           `json:"id"`
	Seed        uint64           `json:"seed"`
	Dims        mines.Dims       `json:"dims"`
	Mines       int              `json:"mines"`
	TurnNum     int              `json:"turnNum"`
	GameOver    bool             `json:"gameOver"`
	Win         bool             `json:"win"`
	CellsRem    int              `json:"cellsRem"`
	Flagged     []mines.Coords   `json:"flagged"`
	Unflagged   []mines.Coords   `json:"unflagged"`
	ClearActual []mines.CellInfo `json:"clearActual"`
	ClearReq    []mines.Coords   `json:"clearReq"`
	TurnTakenAt time.Time        `json:"turnTakenAt"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Validate checks that every revealed cell lies inside the game's grid and
// carries a known state.
func (r *ServerResponse) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing game id", ErrMalformed)
	}
	if !r.Dims.Valid() {
		return fmt.Errorf("%w: invalid dims %v", ErrMalformed, r.Dims)
	}
	for _, info := range r.ClearActual {
		if !r.Dims.Contains(info.Coords) {
			return fmt.Errorf(
				"%w: revealed cell %v outside of %v", ErrMalformed, info.Coords, r.Dims,
			)
		}
		switch info.State {
		case mines.StateCleared:
			if info.Surrounding < 0 {
				return fmt.Errorf(
					"%w: negative mine count at %v", ErrMalformed, info.Coords,
				)
			}
		case mines.StateMine:
		default:
			return fmt.Errorf(
				"%w: unknown cell state %q at %v", ErrMalformed, info.State, info.Coords,
			)
		}
	}
	return nil
}
