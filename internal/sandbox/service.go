package sandbox

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tobz1000/mines/internal/protocol"
)

const (
	gameIDLen      = 10
	gameIDAttempts = 5
	gameIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Store persists games between requests.
type Store interface {
	// Create fails with [ErrDuplicateID] if the id is taken.
	Create(ctx context.Context, g *Game) error
	// Fetch fails with [ErrNotFound] for unknown ids.
	Fetch(ctx context.Context, id string) (*Game, error)
	Update(ctx context.Context, g *Game) error
}

// Service runs games on top of a [Store]. It satisfies the same interface
// as the HTTP client, so a solver can play against it in-process.
type Service struct {
	mu    sync.Mutex
	store Store
	rnd   *rand.Rand
	now   func() time.Time
}

func NewService(store Store, rnd *rand.Rand) *Service {
	return &Service{
		store: store,
		rnd:   rnd,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) newID() string {
	b := make([]byte, gameIDLen)
	for i := range b {
		b[i] = gameIDAlphabet[s.rnd.IntN(len(gameIDAlphabet))]
	}
	return string(b)
}

func (s *Service) NewGame(
	ctx context.Context, req protocol.NewGameRequest,
) (*protocol.ServerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := Params{Dims: req.Dims, Mines: req.Mines, Autoclear: req.Autoclear}
	if req.Seed != nil {
		params.Seed = *req.Seed
	} else {
		params.Seed = s.rnd.Uint64()
	}

	for range gameIDAttempts {
		game, err := NewGame(s.newID(), req.Client, params)
		if err != nil {
			return nil, err
		}
		game.TurnTakenAt = s.now()

		err = s.store.Create(ctx, game)
		if errors.Is(err, ErrDuplicateID) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to store new game: %w", err)
		}

		Log.WithFields(logrus.Fields{
			"id":     game.ID,
			"client": game.Client,
			"dims":   game.Dims,
			"mines":  game.Mines,
			"seed":   game.Seed,
		}).Info("new game")

		return game.Response(), nil
	}
	return nil, fmt.Errorf("unable to allocate a game id: %w", ErrDuplicateID)
}

func (s *Service) Turn(
	ctx context.Context, req protocol.TurnRequest,
) (*protocol.ServerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, err := s.store.Fetch(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := game.Turn(req.Clear, req.Flag, req.Unflag, s.now()); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("unable to store game: %w", err)
	}
	if game.Over {
		Log.WithFields(logrus.Fields{
			"id": game.ID, "turns": game.TurnNum, "won": game.Won,
		}).Info("game over")
	}
	return game.Response(), nil
}

func (s *Service) Status(ctx context.Context, id string) (*protocol.ServerResponse, error) {
	game, err := s.store.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Response(), nil
}

// MemoryStore keeps encoded games in a map.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

func (m *MemoryStore) Create(_ context.Context, g *Game) error {
	b, err := g.Bytes()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; ok {
		return ErrDuplicateID
	}
	m.games[g.ID] = b
	return nil
}

func (m *MemoryStore) Fetch(_ context.Context, id string) (*Game, error) {
	m.mu.RLock()
	b, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrNotFound, id)
	}
	return DecodeGame(b)
}

func (m *MemoryStore) Update(_ context.Context, g *Game) error {
	b, err := g.Bytes()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		return fmt.Errorf("%w (%s)", ErrNotFound, g.ID)
	}
	m.games[g.ID] = b
	return nil
}
