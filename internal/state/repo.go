package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

var ErrStateNotFound = errors.New("state not found")

// StoredState is the row kept per user: the encrypted blob plus the few
// columns the server needs in clear.
type StoredState struct {
	UserID        string
	Payload       string
	DeviceID      string
	Timezone      string
	LastResetDate *time.Time
	ClientTS      int64
	UpdatedAt     time.Time
}

// DueUser is a user whose stored reset date is behind their local today.
type DueUser struct {
	UserID   string
	Timezone string
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *StoredState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.state.get")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	st := &StoredState{}
	err = r.db.
		QueryRow(ctx, `
			SELECT user_id, payload, device_id, timezone, last_reset_date, client_ts, updated_at
			FROM user_state
			WHERE user_id = $1
		`, userID).
		Scan(&st.UserID, &st.Payload, &st.DeviceID, &st.Timezone, &st.LastResetDate, &st.ClientTS, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	return st, nil
}

func (r *Repo) Upsert(ctx context.Context, st StoredState) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.state.upsert")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if st.Timezone == "" {
		st.Timezone = "UTC"
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_state (user_id, payload, device_id, timezone, last_reset_date, client_ts, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (user_id) DO UPDATE
		SET payload = EXCLUDED.payload,
			device_id = EXCLUDED.device_id,
			timezone = EXCLUDED.timezone,
			last_reset_date = EXCLUDED.last_reset_date,
			client_ts = EXCLUDED.client_ts,
			updated_at = now()
	`,
		st.UserID,
		st.Payload,
		st.DeviceID,
		st.Timezone,
		st.LastResetDate,
		st.ClientTS,
	)
	if err != nil {
		return fmt.Errorf("upsert user state: %w", err)
	}
	return nil
}

// ListDueForReset returns onboarded users whose stored reset date lies before
// the current date in their own time zone.
func (r *Repo) ListDueForReset(ctx context.Context, now time.Time) (_ []DueUser, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.state.listDueForReset")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// a zone postgres does not know would fail the whole query, such rows are skipped
	rows, err := r.db.Query(ctx, `
		SELECT user_id, timezone
		FROM user_state
		WHERE last_reset_date IS NOT NULL
		  AND last_reset_date < (
			CASE WHEN timezone IN (SELECT name FROM pg_timezone_names)
				THEN ($1::timestamptz AT TIME ZONE timezone)::date
			END
		  )
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	due := make([]DueUser, 0)
	for rows.Next() {
		var u DueUser
		if err := rows.Scan(&u.UserID, &u.Timezone); err != nil {
			return nil, err
		}
		due = append(due, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("due", len(due)))
	return due, nil
}

func (r *Repo) ListUserIDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.state.listUserIDs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT user_id FROM user_state ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListUpdatedSince returns the stored blobs changed after since, oldest first.
// A nil since lists everything.
func (r *Repo) ListUpdatedSince(ctx context.Context, since *time.Time) (_ []StoredState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.state.listUpdatedSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	query := `
		SELECT user_id, payload, device_id, timezone, last_reset_date, client_ts, updated_at
		FROM user_state
	`
	var args []any
	if since != nil {
		query += ` WHERE updated_at > $1`
		args = append(args, *since)
	}
	query += ` ORDER BY updated_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := make([]StoredState, 0)
	for rows.Next() {
		var st StoredState
		if err := rows.Scan(&st.UserID, &st.Payload, &st.DeviceID, &st.Timezone, &st.LastResetDate, &st.ClientTS, &st.UpdatedAt); err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("states", len(states)))
	return states, nil
}
