package app

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobz1000/mines/internal/client"
	"github.com/tobz1000/mines/internal/config"
	"github.com/tobz1000/mines/internal/mines"
	"github.com/tobz1000/mines/internal/protocol"
	"github.com/tobz1000/mines/internal/sandbox"
)

func TestClientAgainstRoutes(t *testing.T) {
	for _, base := range []string{"/server", "/", ""} {
		t.Run("base "+base, func(t *testing.T) {
			t.Parallel()
			a := New(
				slog.New(slog.NewTextHandler(io.Discard, nil)),
				&config.Sandbox{BasePath: base},
			)
			games := sandbox.NewService(sandbox.NewMemoryStore(), rand.New(rand.NewPCG(5, 6)))
			srv := httptest.NewServer(a.routes(games))
			t.Cleanup(srv.Close)

			c := client.New(srv.URL+base, "tester", client.WithHTTPClient(srv.Client()))
			ctx := context.Background()

			resp, err := c.NewGame(ctx, protocol.NewGameRequest{
				Dims: mines.Dims{3, 3}, Mines: 0, Autoclear: true,
			})
			require.NoError(t, err)

			resp, err = c.Turn(ctx, protocol.TurnRequest{
				ID: resp.ID, Clear: []mines.Coords{{0, 0}},
			})
			require.NoError(t, err)
			assert.True(t, resp.Win)
			assert.Len(t, resp.ClearActual, 9)

			status, err := c.Status(ctx, resp.ID)
			require.NoError(t, err)
			assert.True(t, status.GameOver)

			_, err = c.Status(ctx, "nope")
			assert.ErrorIs(t, err, client.ErrServer)
		})
	}
}
