package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tobz1000/mines/internal/sandbox"
)

type GameSession struct {
	GameSessionID string             `db:"game_session_id"`
	Client        string             `db:"client"`
	Dims          []int              `db:"dims"`
	Mines         int                `db:"mines"`
	Seed          int64              `db:"seed"`
	TurnNum       int                `db:"turn_num"`
	GameOver      bool               `db:"game_over"`
	Win           bool               `db:"win"`
	State         []byte             `db:"state"`
	CreatedAt     pgtype.Timestamptz `db:"created_at"`
	UpdatedAt     pgtype.Timestamptz `db:"updated_at"`
}

func (s *GameSession) Game() (*sandbox.Game, error) {
	return sandbox.DecodeGame(s.State)
}

func sessionArgs(g *sandbox.Game) (pgx.NamedArgs, error) {
	state, err := g.Bytes()
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"game_session_id": g.ID,
		"client":          g.Client,
		"dims":            []int(g.Dims),
		"mines":           g.Mines,
		// bigint holds the seed's bits; the state blob is authoritative.
		"seed":      int64(g.Seed),
		"turn_num":  g.TurnNum,
		"game_over": g.Over,
		"win":       g.Won,
		"state":     state,
	}, nil
}

func (q Queries) CreateGameSession(ctx context.Context, g *sandbox.Game) (*GameSession, error) {
	args, err := sessionArgs(g)
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			game_session_id, client, dims, mines, seed, turn_num, game_over, win, state
		)
		VALUES (
			@game_session_id, @client, @dims, @mines, @seed, @turn_num, @game_over, @win, @state
		)
		RETURNING *;`,
		args,
	)
	session, err := pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
	if err != nil {
		return nil, mapError(g.ID, err)
	}
	return session, nil
}

func (q Queries) FetchGameSession(ctx context.Context, id string) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		id,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	if err != nil {
		return nil, mapError(id, err)
	}
	return session, nil
}

func (q Queries) UpdateGameSession(ctx context.Context, g *sandbox.Game) (*GameSession, error) {
	args, err := sessionArgs(g)
	if err != nil {
		return nil, err
	}
	rows, _ := q.db.Query(
		ctx,
		`UPDATE game_session
		SET turn_num = @turn_num, game_over = @game_over, win = @win,
			state = @state, updated_at = now()
		WHERE game_session_id = @game_session_id
		RETURNING *;`,
		args,
	)
	session, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
	if err != nil {
		return nil, mapError(g.ID, err)
	}
	return session, nil
}

// [Queries] implements [sandbox.Store]

func (q Queries) Create(ctx context.Context, g *sandbox.Game) error {
	_, err := q.CreateGameSession(ctx, g)
	return err
}

func (q Queries) Fetch(ctx context.Context, id string) (*sandbox.Game, error) {
	session, err := q.FetchGameSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.Game()
}

func (q Queries) Update(ctx context.Context, g *sandbox.Game) error {
	_, err := q.UpdateGameSession(ctx, g)
	return err
}
