package exercises

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=exercises_test

type setsRepo interface {
	AddBatch(ctx context.Context, sets []Set) (int, error)
	Delete(ctx context.Context, userID string, id int) error
	ListAll(ctx context.Context, params SetParams) ([]Set, error)
	List(ctx context.Context, params ListParams) (_ []Set, total int, err error)
}

// ExerciseHistory holds, for each day, the average kilos and reps per set
// of a single exercise. Days are keyed as YYYY-MM-DD in the user's zone.
type ExerciseHistory struct {
	ExerciseName string                   `json:"exerciseName"`
	Stats        map[string]ExerciseStats `json:"stats"`
}

type ExerciseStats struct {
	AvgKilos float64 `json:"avgKilos"`
	AvgReps  float64 `json:"avgReps"`
	Sets     int     `json:"sets"`
	// sum of kilos x reps
	Volume float64 `json:"volume"`
	// best estimated one rep max of the day (Epley)
	Estimated1RM float64 `json:"estimated1rm"`
}

type Analyzer struct {
	repo setsRepo
}

func NewAnalyzer(repo setsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Epley returns the estimated one rep max of a set.
func Epley(kilos float64, reps int) float64 {
	if reps <= 0 || kilos <= 0 {
		return 0
	}
	if reps == 1 {
		return kilos
	}
	return kilos * (1 + float64(reps)/30)
}

func (a *Analyzer) ExerciseHistory(
	ctx context.Context,
	params SetParams,
	timezone string,
) (_ *ExerciseHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.exerciseHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_name", params.ExerciseName))

	sets, err := a.repo.ListAll(ctx, params)
	if err != nil {
		return nil, err
	}

	history := &ExerciseHistory{
		ExerciseName: params.ExerciseName,
		Stats:        make(map[string]ExerciseStats),
	}

	day2sets := make(map[string][]Set)
	for _, s := range sets {
		day := state.LocalDate(s.CreatedAt, timezone)
		day2sets[day] = append(day2sets[day], s)
	}

	for day, daySets := range day2sets {
		var kilos, reps, volume, best float64
		for _, s := range daySets {
			kilos += s.Kilos
			reps += float64(s.Reps)
			volume += s.Kilos * float64(s.Reps)
			best = max(best, Epley(s.Kilos, s.Reps))
		}
		n := float64(len(daySets))
		history.Stats[day] = ExerciseStats{
			AvgKilos:     round2(kilos / n),
			AvgReps:      round2(reps / n),
			Sets:         len(daySets),
			Volume:       round2(volume),
			Estimated1RM: round2(best),
		}
	}

	return history, nil
}

type ExercisePercentageInfo struct {
	ExerciseName string  `json:"exerciseName"`
	Sets         int     `json:"sets"`
	Percentage   float64 `json:"percentage"`
}

// ExercisePercentages returns, keyed by exercise id, the share of sets each
// exercise took within a muscle group.
func (a *Analyzer) ExercisePercentages(
	ctx context.Context,
	userID, muscleGroup string,
	from *time.Time,
) (_ map[string]ExercisePercentageInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.exercisePercentages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("muscle_group", muscleGroup))

	sets, err := a.repo.ListAll(ctx, SetParams{
		UserID:      userID,
		MuscleGroup: muscleGroup,
		From:        from,
	})
	if err != nil {
		return nil, err
	}

	exercise2count := make(map[string]int)
	exercise2name := make(map[string]string)
	for _, s := range sets {
		exercise2count[s.ExerciseID]++
		exercise2name[s.ExerciseID] = s.ExerciseName
	}

	exercise2percentage := make(map[string]ExercisePercentageInfo)
	for exercise, count := range exercise2count {
		p := float64(count) / float64(len(sets)) * 100
		// leave only 2 decimals
		p = float64(int(p*100)) / 100
		exercise2percentage[exercise] = ExercisePercentageInfo{
			ExerciseName: exercise2name[exercise],
			Sets:         count,
			Percentage:   p,
		}
	}

	return exercise2percentage, nil
}

// MuscleGroupPercentages returns the share of sets per muscle group.
func (a *Analyzer) MuscleGroupPercentages(
	ctx context.Context,
	userID string,
	from *time.Time,
) (_ map[string]float64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.gymstats.muscleGroupPercentages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sets, err := a.repo.ListAll(ctx, SetParams{UserID: userID, From: from})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, s := range sets {
		counts[s.MuscleGroup]++
	}

	percentages := make(map[string]float64, len(counts))
	for mg, c := range counts {
		percentages[mg] = round2(float64(c) / float64(len(sets)) * 100)
	}
	return percentages, nil
}
