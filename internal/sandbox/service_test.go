package sandbox

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobz1000/mines/internal/mines"
	"github.com/tobz1000/mines/internal/protocol"
)

func newTestService(store Store) *Service {
	s := NewService(store, rand.New(rand.NewPCG(1, 2)))
	s.now = func() time.Time { return epoch }
	return s
}

func TestServiceGame(t *testing.T) {
	ctx := context.Background()
	s := newTestService(NewMemoryStore())

	seed := uint64(11)
	resp, err := s.NewGame(ctx, protocol.NewGameRequest{
		Client: "tester", Seed: &seed, Dims: mines.Dims{4, 4}, Mines: 3,
	})
	require.NoError(t, err)
	assert.Len(t, resp.ID, gameIDLen)
	assert.Equal(t, uint64(11), resp.Seed)
	assert.Equal(t, 13, resp.CellsRem)
	assert.Zero(t, resp.TurnNum)

	resp, err = s.Turn(ctx, protocol.TurnRequest{
		ID: resp.ID, Clear: []mines.Coords{{0, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TurnNum)
	assert.Equal(t, 12, resp.CellsRem)
	require.Len(t, resp.ClearActual, 1)
	assert.Equal(t, mines.Coords{0, 0}, resp.ClearActual[0].Coords)

	status, err := s.Status(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, status)
}

func TestServiceErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestService(NewMemoryStore())

	_, err := s.NewGame(ctx, protocol.NewGameRequest{Dims: mines.Dims{2, 2}, Mines: 4})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = s.Turn(ctx, protocol.TurnRequest{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Status(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	resp, err := s.NewGame(ctx, protocol.NewGameRequest{Dims: mines.Dims{2, 2}, Mines: 1})
	require.NoError(t, err)
	_, err = s.Turn(ctx, protocol.TurnRequest{ID: resp.ID, Clear: []mines.Coords{{2, 2}}})
	assert.ErrorIs(t, err, ErrInvalidCoords)
}

// collidingStore rejects the first few ids it is given.
type collidingStore struct {
	*MemoryStore
	collisions int
	ids        []string
}

func (c *collidingStore) Create(ctx context.Context, g *Game) error {
	c.ids = append(c.ids, g.ID)
	if c.collisions > 0 {
		c.collisions--
		return ErrDuplicateID
	}
	return c.MemoryStore.Create(ctx, g)
}

func TestServiceRetriesDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	store := &collidingStore{MemoryStore: NewMemoryStore(), collisions: 2}
	s := newTestService(store)

	resp, err := s.NewGame(ctx, protocol.NewGameRequest{Dims: mines.Dims{3}, Mines: 1})
	require.NoError(t, err)
	require.Len(t, store.ids, 3)
	assert.Equal(t, store.ids[2], resp.ID)
	assert.NotEqual(t, store.ids[0], store.ids[1])

	store.collisions = gameIDAttempts
	_, err = s.NewGame(ctx, protocol.NewGameRequest{Dims: mines.Dims{3}, Mines: 1})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	g := newTestGame(t, Params{Dims: mines.Dims{3}, Mines: 1})

	assert.ErrorIs(t, m.Update(ctx, g), ErrNotFound)
	require.NoError(t, m.Create(ctx, g))
	assert.ErrorIs(t, m.Create(ctx, g), ErrDuplicateID)

	g.TurnNum = 5
	require.NoError(t, m.Update(ctx, g))
	fetched, err := m.Fetch(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fetched.TurnNum)

	fetched.TurnNum = 6
	again, err := m.Fetch(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.TurnNum, "fetched games are copies")
}
