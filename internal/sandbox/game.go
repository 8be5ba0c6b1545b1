// Package sandbox implements an in-process n-dimensional minesweeper server
// speaking the same protocol as the remote game server.
package sandbox

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/tobz1000/mines/internal/mines"
	"github.com/tobz1000/mines/internal/protocol"
)

var Log = logrus.New()

var (
	ErrGameOver      = errors.New("game over")
	ErrInvalidCoords = errors.New("invalid coordinates")
	ErrInvalidParams = errors.New("invalid game parameters")
	ErrNotFound      = errors.New("unknown game id")
	ErrDuplicateID   = errors.New("duplicate game id")
)

type Params struct {
	Dims      mines.Dims
	Mines     int
	Seed      uint64
	Autoclear bool
}

func (p Params) Validate() error {
	if !p.Dims.Valid() {
		return fmt.Errorf("%w: dims %v", ErrInvalidParams, p.Dims)
	}
	if size := p.Dims.Size(); p.Mines < 0 || p.Mines > size-1 {
		return fmt.Errorf(
			"%w: %d mines on %d cells (max %d)", ErrInvalidParams, p.Mines, size, size-1,
		)
	}
	return nil
}

// Game is the full server-side state of one game. Mines are placed on the
// first clear so that the first cleared cell is never a mine.
type Game struct {
	ID     string
	Client string
	Params

	Placed   bool
	Mine     []bool
	Cleared  []bool
	Flagged  []bool
	CellsRem int
	TurnNum  int
	Over     bool
	Won      bool

	TurnTakenAt     time.Time
	LastClearReq    []mines.Coords
	LastClearActual []mines.CellInfo
	LastFlagged     []mines.Coords
	LastUnflagged   []mines.Coords
}

func NewGame(id, client string, params Params) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	size := params.Dims.Size()
	g := &Game{
		ID:       id,
		Client:   client,
		Params:   params,
		Mine:     make([]bool, size),
		Cleared:  make([]bool, size),
		Flagged:  make([]bool, size),
		CellsRem: size - params.Mines,
	}
	return g, nil
}

func DecodeGame(buf []byte) (*Game, error) {
	var game Game
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Game) validate(lists ...[]mines.Coords) error {
	for _, list := range lists {
		for _, c := range list {
			if !g.Dims.Contains(c) {
				return fmt.Errorf("%w: %v outside of %v", ErrInvalidCoords, c, g.Dims)
			}
		}
	}
	return nil
}

// placeMines lays the mines out avoiding the cell at safe, deterministically
// for the game's seed.
func (g *Game) placeMines(safe int) {
	r := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	count := g.Mines
	for _, i := range r.Perm(len(g.Mine)) {
		if count == 0 {
			break
		}
		if i == safe {
			continue
		}
		g.Mine[i] = true
		count--
	}
	g.Placed = true
}

func (g *Game) surrounding(index int) int {
	count := 0
	for _, s := range mines.Neighbors(mines.IndexToCoords(index, g.Dims), g.Dims) {
		if g.Mine[s] {
			count++
		}
	}
	return count
}

// open clears a safe cell and, with autoclear, every cell reachable through
// cells without surrounding mines.
func (g *Game) open(index int) {
	var todo deque.Deque[int]
	todo.PushBack(index)

	for todo.Len() != 0 {
		i := todo.PopFront()
		if g.Cleared[i] {
			continue
		}
		g.Cleared[i] = true
		g.Flagged[i] = false
		g.CellsRem--

		coords := mines.IndexToCoords(i, g.Dims)
		n := g.surrounding(i)
		g.LastClearActual = append(g.LastClearActual, mines.CellInfo{
			Surrounding: n,
			State:       mines.StateCleared,
			Coords:      coords,
		})

		if n == 0 && g.Autoclear {
			for _, s := range mines.Neighbors(coords, g.Dims) {
				if !g.Cleared[s] {
					todo.PushBack(s)
				}
			}
		}
	}
}

// Turn applies one batch of player actions: unflags, then flags, then
// clears. Clearing a mine ends the game and reveals that mine.
func (g *Game) Turn(clear, flag, unflag []mines.Coords, now time.Time) error {
	if g.Over {
		return ErrGameOver
	}
	if err := g.validate(clear, flag, unflag); err != nil {
		return err
	}

	g.TurnNum++
	g.TurnTakenAt = now
	g.LastClearReq = clear
	g.LastClearActual = nil
	g.LastFlagged = nil
	g.LastUnflagged = nil

	for _, c := range unflag {
		if i := mines.CoordsToIndex(c, g.Dims); g.Flagged[i] {
			g.Flagged[i] = false
			g.LastUnflagged = append(g.LastUnflagged, c)
		}
	}
	for _, c := range flag {
		if i := mines.CoordsToIndex(c, g.Dims); !g.Flagged[i] && !g.Cleared[i] {
			g.Flagged[i] = true
			g.LastFlagged = append(g.LastFlagged, c)
		}
	}

	for _, c := range clear {
		i := mines.CoordsToIndex(c, g.Dims)
		if !g.Placed {
			g.placeMines(i)
		}
		if g.Cleared[i] {
			continue
		}
		if g.Mine[i] {
			g.Over = true
			g.LastClearActual = append(g.LastClearActual, mines.CellInfo{
				State: mines.StateMine, Coords: c,
			})
			Log.WithFields(logrus.Fields{
				"id": g.ID, "turn": g.TurnNum, "coords": c,
			}).Debug("mine cleared")
			break
		}
		g.open(i)
	}

	if !g.Over && g.CellsRem == 0 {
		g.Over = true
		g.Won = true
	}

	Log.WithFields(logrus.Fields{
		"id":       g.ID,
		"turn":     g.TurnNum,
		"clear":    len(clear),
		"flag":     len(g.LastFlagged),
		"revealed": len(g.LastClearActual),
		"cellsRem": g.CellsRem,
		"over":     g.Over,
		"won":      g.Won,
	}).Debug("turn taken")

	return nil
}

// Response reports the game state along with the outcome of the last turn.
func (g *Game) Response() *protocol.ServerResponse {
	return &protocol.ServerResponse{
		ID:          g.ID,
		Seed:        g.Seed,
		Dims:        g.Dims,
		Mines:       g.Mines,
		TurnNum:     g.TurnNum,
		GameOver:    g.Over,
		Win:         g.Won,
		CellsRem:    g.CellsRem,
		Flagged:     nonNil(g.LastFlagged),
		Unflagged:   nonNil(g.LastUnflagged),
		ClearActual: nonNil(g.LastClearActual),
		ClearReq:    nonNil(g.LastClearReq),
		TurnTakenAt: g.TurnTakenAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
