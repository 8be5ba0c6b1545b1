package mines

type CellState int8

const (
	Unknown CellState = iota
	Cleared
	Flagged
)

func (s CellState) String() string {
	switch s {
	case Unknown:
		return "unknown"
	case Cleared:
		return "cleared"
	case Flagged:
		return "flagged"
	default:
		return "invalid"
	}
}

// Signal is a conclusion a cleared cell draws about all of its neighbors.
type Signal int8

const (
	NoSignal Signal = iota
	CertifySafe
	CertifyMine
)

// Cell tracks what is known about one square and its surroundings.
//
// The neighbor counters accumulate in every state: evidence may reach a cell
// before the server reports it cleared. Deductions are only drawn once the
// cell is cleared and its required mine count is known.
type Cell struct {
	state         CellState
	surrCount     int
	requiredMines int
	knownMines    int
	knownSafe     int
	submitted     bool
	safeCertified bool
	mineCertified bool
}

// NewCell returns an unknown cell with surrCount neighbors.
func NewCell(surrCount int) Cell {
	return Cell{surrCount: surrCount}
}

func (c Cell) State() CellState { return c.state }

// RequiredMines is the mine count reported for a cleared cell.
func (c Cell) RequiredMines() int { return c.requiredMines }

func (c Cell) KnownMineNeighbors() int { return c.knownMines }

func (c Cell) KnownSafeNeighbors() int { return c.knownSafe }

func (c *Cell) RecordMineNeighbor() Signal {
	c.knownMines++
	return c.deduce()
}

func (c *Cell) RecordSafeNeighbor() Signal {
	c.knownSafe++
	return c.deduce()
}

// TransitionToCleared marks an unknown cell as cleared with n surrounding
// mines. A cell with no surrounding mines certifies its neighbors safe
// immediately. Cells that are not unknown are left untouched.
func (c *Cell) TransitionToCleared(n int) Signal {
	if c.state != Unknown {
		return NoSignal
	}
	c.state = Cleared
	c.requiredMines = n
	return c.deduce()
}

func (c *Cell) TransitionToFlagged() {
	if c.state == Unknown {
		c.state = Flagged
	}
}

// ClaimSubmission returns true exactly once over the cell's lifetime.
func (c *Cell) ClaimSubmission() bool {
	if c.submitted {
		return false
	}
	c.submitted = true
	return true
}

// deduce reports a conclusion the first time its condition holds:
//   - every mine around the cell is known, so the rest are safe;
//   - every neighbor not known to be safe must be a mine.
func (c *Cell) deduce() Signal {
	if c.state != Cleared {
		return NoSignal
	}
	if !c.safeCertified && c.knownMines == c.requiredMines {
		c.safeCertified = true
		return CertifySafe
	}
	if !c.mineCertified && c.surrCount-c.knownSafe == c.requiredMines {
		c.mineCertified = true
		return CertifyMine
	}
	return NoSignal
}
