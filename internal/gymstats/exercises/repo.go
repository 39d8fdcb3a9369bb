package exercises

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

var ErrSetNotFound = errors.New("exercise set not found")

type SetParams struct {
	UserID       string
	ExerciseName string
	MuscleGroup  string
	From         *time.Time
	To           *time.Time
}

type ListParams struct {
	SetParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// AddBatch stores all sets of one workout in a single copy.
func (r *Repo) AddBatch(ctx context.Context, sets []Set) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.addBatch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sets", len(sets)))

	if len(sets) == 0 {
		return 0, nil
	}

	copied, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"exercise_log"},
		[]string{"user_id", "workout_id", "exercise_id", "exercise_name", "muscle_group", "kilos", "reps", "rir", "set_type", "created_at"},
		pgx.CopyFromSlice(len(sets), func(i int) ([]any, error) {
			s := sets[i]
			return []any{s.UserID, s.WorkoutID, s.ExerciseID, s.ExerciseName, s.MuscleGroup, s.Kilos, s.Reps, s.RIR, s.SetType, s.CreatedAt}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy sets: %w", err)
	}
	return int(copied), nil
}

func (r *Repo) Delete(ctx context.Context, userID string, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise_log WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// ListAll returns all sets matching the params, newest first.
func (r *Repo) ListAll(ctx context.Context, params SetParams) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_name", params.ExerciseName))
	span.SetAttributes(attribute.String("muscle_group", params.MuscleGroup))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, workout_id, exercise_id, exercise_name, muscle_group, kilos, reps, rir, set_type, created_at
			FROM exercise_log
				WHERE user_id = $1
				AND ($2::text = '' OR lower(exercise_name) = lower($2))
				AND ($3::text = '' OR muscle_group = $3)
				AND ($4::timestamptz IS NULL OR created_at >= $4)
				AND ($5::timestamptz IS NULL OR created_at <= $5)
			ORDER BY created_at DESC, id DESC;`,
		params.UserID, params.ExerciseName, params.MuscleGroup,
		params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	return sets, nil
}

// List is like ListAll, but returns a single page (pages start at 1) and the total count.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Set, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	countAll, err := r.Count(ctx, params.SetParams)
	if err != nil {
		return nil, -1, err
	}
	span.SetAttributes(attribute.Int("count_all", countAll))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				id, user_id, workout_id, exercise_id, exercise_name, muscle_group, kilos, reps, rir, set_type, created_at
			FROM exercise_log
				WHERE user_id = $1
				AND ($2::text = '' OR lower(exercise_name) = lower($2))
				AND ($3::text = '' OR muscle_group = $3)
				AND ($4::timestamptz IS NULL OR created_at >= $4)
				AND ($5::timestamptz IS NULL OR created_at <= $5)
			ORDER BY created_at DESC, id DESC
			LIMIT $6
			OFFSET $7;`,
		params.UserID, params.ExerciseName, params.MuscleGroup,
		params.From, params.To,
		params.Size, (params.Page-1)*params.Size,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	sets, err := rows2sets(rows)
	if err != nil {
		return nil, -1, err
	}
	return sets, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params SetParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gymstats.exercises.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM exercise_log
			WHERE user_id = $1
			AND ($2::text = '' OR lower(exercise_name) = lower($2))
			AND ($3::text = '' OR muscle_group = $3)
			AND ($4::timestamptz IS NULL OR created_at >= $4)
			AND ($5::timestamptz IS NULL OR created_at <= $5);
	`,
		params.UserID, params.ExerciseName, params.MuscleGroup,
		params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count sets: %w", err)
	}
	return count, nil
}

func rows2sets(rows pgx.Rows) ([]Set, error) {
	sets := make([]Set, 0)
	for rows.Next() {
		var s Set
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.WorkoutID, &s.ExerciseID, &s.ExerciseName, &s.MuscleGroup,
			&s.Kilos, &s.Reps, &s.RIR, &s.SetType, &s.CreatedAt,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}
