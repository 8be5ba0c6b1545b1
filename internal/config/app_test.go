package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandboxDefaults(t *testing.T) {
	cfg, err := NewSandbox()
	require.NoError(t, err)
	assert.Equal(t, ":1066", cfg.Addr)
	assert.Equal(t, "/server", cfg.BasePath)
	assert.False(t, cfg.Persist)
}

func TestSolverFromEnv(t *testing.T) {
	t.Setenv("MINES_DIMS", "5,6,7")
	t.Setenv("MINES_COUNT", "12")
	t.Setenv("MINES_SEED", "99")
	t.Setenv("MINES_FIRST", "0,1,2")
	t.Setenv("MINES_PARALLEL", "4")

	cfg, err := NewSolver()
	require.NoError(t, err)
	assert.Equal(t, []int{5, 6, 7}, cfg.Dims)
	assert.Equal(t, 12, cfg.Mines)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(99), *cfg.Seed)
	assert.Equal(t, []int{0, 1, 2}, cfg.First)
	assert.Equal(t, 4, cfg.Parallel)
	assert.Equal(t, 1, cfg.Games)
}

func TestSolverDefaults(t *testing.T) {
	cfg, err := NewSolver()
	require.NoError(t, err)
	assert.Equal(t, []int{16, 16}, cfg.Dims)
	assert.Equal(t, 40, cfg.Mines)
	assert.Nil(t, cfg.Seed)
	assert.Nil(t, cfg.First)
}

func TestSolverInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"no games", "MINES_GAMES", "0"},
		{"no workers", "MINES_PARALLEL", "0"},
		{"first rank", "MINES_FIRST", "1,2,3"},
		{"not a number", "MINES_COUNT", "many"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.val)
			_, err := NewSolver()
			assert.Error(t, err)
		})
	}
}

func TestDevelopment(t *testing.T) {
	t.Setenv("DEVELOPMENT", "1")
	assert.True(t, Development())
	t.Setenv("DEVELOPMENT", "0")
	assert.False(t, Development())
}

func TestDbURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_USER", "mines")
	t.Setenv("POSTGRES_PASSWORD", "p@ss word")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_DB", "sandbox")

	url, err := DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://mines:p%40ss%20word@db:5432/sandbox?sslmode=disable", url)

	t.Setenv("DATABASE_URL", "postgresql://elsewhere/db")
	url, err = DbURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://elsewhere/db", url)
}
