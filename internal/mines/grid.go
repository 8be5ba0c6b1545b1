package mines

import (
	"log/slog"
	"slices"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

type gridCell struct {
	cell Cell
	surr []int
}

// GameGrid holds everything the engine knows about one game.
type GameGrid struct {
	dims  Dims
	cells []gridCell
}

// NewGameGrid returns a grid of unknown cells with precomputed neighbor
// lists. The dims slice is copied.
func NewGameGrid(dims Dims) *GameGrid {
	dims = slices.Clone(dims)
	cells := make([]gridCell, dims.Size())
	for i := range cells {
		surr := Neighbors(IndexToCoords(i, dims), dims)
		cells[i] = gridCell{cell: NewCell(len(surr)), surr: surr}
	}
	return &GameGrid{dims: dims, cells: cells}
}

func (g *GameGrid) Dims() Dims { return g.dims }

// Cell returns a copy of the cell at coords.
func (g *GameGrid) Cell(coords Coords) Cell {
	return g.cells[CoordsToIndex(coords, g.dims)].cell
}

// NextTurn consumes the grid, applies a batch of revealed cells and returns
// the updated grid along with every cell that became certainly safe or
// certainly mined. The receiver is emptied and must not be used again.
func (g *GameGrid) NextTurn(revealed []CellInfo) (*GameGrid, ServerActions) {
	var (
		queue     deque.Deque[message]
		toClear   []int
		toFlag    []int
		processed int
		next      = &GameGrid{dims: g.dims, cells: g.cells}
		cells     = next.cells
	)
	*g = GameGrid{}

	for _, info := range revealed {
		if !next.dims.Contains(info.Coords) {
			Log.Warn("revealed cell out of bounds",
				slog.Any("coords", info.Coords), slog.Any("dims", next.dims))
			continue
		}
		index := CoordsToIndex(info.Coords, next.dims)
		switch info.State {
		case StateCleared:
			queue.PushBack(message{index: index, action: clientClear, mines: info.Surrounding})
		case StateMine:
			queue.PushBack(message{index: index, action: flag})
		default:
			Log.Warn("revealed cell has unknown state",
				slog.Any("coords", info.Coords), slog.String("state", string(info.State)))
		}
	}

	broadcast := func(surr []int, a action) {
		for _, s := range surr {
			queue.PushBack(message{index: s, action: a})
		}
	}

	for queue.Len() != 0 {
		var (
			m      = queue.PopFront()
			c      = &cells[m.index]
			signal Signal
		)
		processed++

		switch m.action {
		case incSurrMine:
			signal = c.cell.RecordMineNeighbor()
		case incSurrSafe:
			signal = c.cell.RecordSafeNeighbor()
		case clientClear:
			if c.cell.State() != Unknown {
				continue
			}
			// the server already knows this cell
			c.cell.ClaimSubmission()
			broadcast(c.surr, incSurrSafe)
			signal = c.cell.TransitionToCleared(m.mines)
		case serverClear:
			if c.cell.ClaimSubmission() {
				toClear = append(toClear, m.index)
			}
		case flag:
			if c.cell.State() == Unknown && c.cell.ClaimSubmission() {
				toFlag = append(toFlag, m.index)
				broadcast(c.surr, incSurrMine)
				c.cell.TransitionToFlagged()
			}
		}

		if a, ok := signalAction(signal); ok {
			broadcast(c.surr, a)
		}
	}

	actions := newServerActions(toClear, toFlag, next.dims)

	Log.Debug("turn processed",
		slog.Int("revealed", len(revealed)),
		slog.Int("messages", processed),
		slog.Int("to_clear", len(actions.ToClear)),
		slog.Int("to_flag", len(actions.ToFlag)),
	)

	return next, actions
}
