//go:build integration

package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/aresprotocol/internal/state"
)

func (s *IntegrationTestSuite) TestState_ListDueForResetSkipsUnknownTimezone() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, s.pgDSN)
	require.NoError(t, err)
	defer pool.Close()

	insert := func(timezone string) string {
		id := uuid.NewString()
		_, err := s.DB.ExecContext(ctx,
			`INSERT INTO account (id, email, password_hash) VALUES ($1, $2, 'x')`,
			id, id+"@ares.app",
		)
		require.NoError(t, err)
		_, err = s.DB.ExecContext(ctx,
			`INSERT INTO user_state (user_id, payload, timezone, last_reset_date) VALUES ($1, 'x', $2, '2020-01-01')`,
			id, timezone,
		)
		require.NoError(t, err)
		return id
	}
	good := insert("Europe/Belgrade")
	bad := insert("Mars/Olympus_Mons")

	due, err := state.NewRepo(pool).ListDueForReset(ctx, time.Now())
	require.NoError(t, err)

	ids := make([]string, 0, len(due))
	for _, u := range due {
		ids = append(ids, u.UserID)
	}
	assert.Contains(t, ids, good)
	assert.NotContains(t, ids, bad)
}
