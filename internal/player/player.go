// Package player plays whole games against a game server, submitting only
// the moves the deduction engine is certain of.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/tobz1000/mines/internal/mines"
	"github.com/tobz1000/mines/internal/protocol"
)

var Log *slog.Logger = slog.Default()

var ErrInvalidFirst = errors.New("first move outside of the grid")

// Server is a game server. Both the HTTP client and the in-process sandbox
// satisfy it.
type Server interface {
	NewGame(ctx context.Context, req protocol.NewGameRequest) (*protocol.ServerResponse, error)
	Turn(ctx context.Context, req protocol.TurnRequest) (*protocol.ServerResponse, error)
}

type Outcome string

const (
	Won     Outcome = "won"
	Lost    Outcome = "lost"
	Stalled Outcome = "stalled"
)

type Params struct {
	Dims      mines.Dims
	Mines     int
	Seed      *uint64
	Autoclear bool
	// First is the opening clear. A random cell is opened when nil.
	First mines.Coords
	Rand  *rand.Rand
}

type Result struct {
	GameID   string        `json:"gameId"`
	Dims     mines.Dims    `json:"dims"`
	Mines    int           `json:"mines"`
	Seed     uint64        `json:"seed"`
	Outcome  Outcome       `json:"outcome"`
	Turns    int           `json:"turns"`
	Cleared  int           `json:"cleared"`
	Flagged  int           `json:"flagged"`
	CellsRem int           `json:"cellsRem"`
	Elapsed  time.Duration `json:"elapsed"`
}

func (p Params) first(dims mines.Dims) (mines.Coords, error) {
	if p.First != nil {
		if !dims.Contains(p.First) {
			return nil, fmt.Errorf("%w: %v in %v", ErrInvalidFirst, p.First, dims)
		}
		return p.First, nil
	}
	intN := rand.IntN
	if p.Rand != nil {
		intN = p.Rand.IntN
	}
	return mines.IndexToCoords(intN(dims.Size()), dims), nil
}

// Play runs one game to its end: a single opening clear, then whatever the
// engine can deduce each turn. The game is stalled when a turn yields no
// certain move.
func Play(ctx context.Context, srv Server, params Params) (*Result, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := srv.NewGame(ctx, protocol.NewGameRequest{
		Seed:      params.Seed,
		Dims:      params.Dims,
		Mines:     params.Mines,
		Autoclear: params.Autoclear,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to start game: %w", err)
	}

	first, err := params.first(resp.Dims)
	if err != nil {
		return nil, err
	}

	result := &Result{
		GameID:   resp.ID,
		Dims:     resp.Dims,
		Mines:    resp.Mines,
		Seed:     resp.Seed,
		CellsRem: resp.CellsRem,
	}
	logger := Log.With(slog.String("id", resp.ID))
	logger.Debug("game started", slog.Any("dims", resp.Dims), slog.Any("first", first))

	grid := mines.NewGameGrid(resp.Dims)
	req := protocol.TurnRequest{ID: resp.ID, Clear: []mines.Coords{first}}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("game %s interrupted: %w", resp.ID, err)
		}

		resp, err = srv.Turn(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("turn %d of game %s: %w", result.Turns+1, req.ID, err)
		}

		result.Turns++
		result.Flagged += len(req.Flag)
		result.CellsRem = resp.CellsRem
		for _, info := range resp.ClearActual {
			if info.State == mines.StateCleared {
				result.Cleared++
			}
		}

		if resp.GameOver {
			result.Outcome = Lost
			if resp.Win {
				result.Outcome = Won
			}
			break
		}

		var actions mines.ServerActions
		grid, actions = grid.NextTurn(resp.ClearActual)
		if actions.Empty() {
			result.Outcome = Stalled
			break
		}
		logger.Debug("next turn", slog.Int("turn", resp.TurnNum+1), slog.String("actions", actions.String()))

		req = protocol.TurnRequest{ID: resp.ID, Clear: actions.ToClear, Flag: actions.ToFlag}
	}

	result.Elapsed = time.Since(start)
	logger.Info(
		"game finished",
		slog.String("outcome", string(result.Outcome)),
		slog.Int("turns", result.Turns),
		slog.Int("cellsRem", result.CellsRem),
	)
	return result, nil
}

// Summary tallies the outcomes of many games.
type Summary struct {
	Games   int `json:"games"`
	Won     int `json:"won"`
	Lost    int `json:"lost"`
	Stalled int `json:"stalled"`
	Turns   int `json:"turns"`
}

func (s *Summary) Add(r *Result) {
	s.Games++
	s.Turns += r.Turns
	switch r.Outcome {
	case Won:
		s.Won++
	case Lost:
		s.Lost++
	case Stalled:
		s.Stalled++
	}
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Games)
}
