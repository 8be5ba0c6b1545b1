package mines

import (
	"fmt"
	"slices"
)

// RevealedState is the server's verdict on a revealed cell.
type RevealedState string

const (
	StateCleared RevealedState = "cleared"
	StateMine    RevealedState = "mine"
)

// CellInfo is one revealed cell as reported by the game server.
// Surrounding is only meaningful for cleared cells.
type CellInfo struct {
	Surrounding int           `json:"surrounding"`
	State       RevealedState `json:"state"`
	Coords      Coords        `json:"coords"`
}

// ServerActions is the batch of cells the engine is certain about.
type ServerActions struct {
	ToClear []Coords
	ToFlag  []Coords
}

func (a ServerActions) Empty() bool {
	return len(a.ToClear) == 0 && len(a.ToFlag) == 0
}

func (a ServerActions) String() string {
	return fmt.Sprintf("clear %v flag %v", a.ToClear, a.ToFlag)
}

func newServerActions(toClear, toFlag []int, dims Dims) ServerActions {
	return ServerActions{
		ToClear: indicesToCoords(toClear, dims),
		ToFlag:  indicesToCoords(toFlag, dims),
	}
}

// indicesToCoords sorts indices in place; row-major order makes the result
// lexicographically ordered.
func indicesToCoords(indices []int, dims Dims) []Coords {
	slices.Sort(indices)
	coords := make([]Coords, 0, len(indices))
	for _, i := range indices {
		coords = append(coords, IndexToCoords(i, dims))
	}
	return coords
}

type action int8

const (
	incSurrMine action = iota
	incSurrSafe
	clientClear
	serverClear
	flag
)

func (a action) String() string {
	switch a {
	case incSurrMine:
		return "IncSurrMine"
	case incSurrSafe:
		return "IncSurrSafe"
	case clientClear:
		return "ClientClear"
	case serverClear:
		return "ServerClear"
	case flag:
		return "Flag"
	default:
		return "Invalid"
	}
}

// message is one unit of work on the turn queue.
type message struct {
	index  int
	action action
	mines  int // surrounding mine count of a clientClear
}

// signalAction maps a cell's conclusion to the message its neighbors receive.
func signalAction(s Signal) (action, bool) {
	switch s {
	case CertifySafe:
		return serverClear, true
	case CertifyMine:
		return flag, true
	default:
		return 0, false
	}
}
