package exercises

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/aresprotocol/internal/state"
)

const UnknownMuscleGroup = "Unknown"

// Set is a single completed set as persisted to the exercise log.
type Set struct {
	ID           int       `json:"id"`
	UserID       string    `json:"userId"`
	WorkoutID    string    `json:"workoutId"`
	ExerciseID   string    `json:"exerciseId"`
	ExerciseName string    `json:"exerciseName"`
	MuscleGroup  string    `json:"muscleGroup"`
	Kilos        float64   `json:"kilos"`
	Reps         int       `json:"reps"`
	RIR          *int      `json:"rir,omitempty"`
	SetType      string    `json:"setType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MuscleResolver finds the primary muscle of an exercise by its name.
type MuscleResolver func(name string) (state.MuscleGroup, bool)

// FromWorkout flattens the logs of a finished workout into exercise log sets.
// Logs are keyed by exercise name or by the exercise index within the day.
// Sets that are not completed or lack numeric weight/reps are skipped.
func FromWorkout(
	userID string,
	day *state.WorkoutDay,
	item state.WorkoutHistoryItem,
	finishedAt time.Time,
	resolve MuscleResolver,
) []Set {
	keys := make([]string, 0, len(item.Logs))
	for k := range item.Logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	workoutID := ""
	if day != nil {
		workoutID = day.ID
	}

	var sets []Set
	for _, key := range keys {
		ex := exerciseFor(day, key)
		name := key
		if ex != nil {
			name = ex.Name
		}
		exerciseID, muscle := identify(ex, name, resolve)

		for _, l := range item.Logs[key] {
			if !l.Completed {
				continue
			}
			kilos, ok := state.ParseNumber(l.Weight)
			if !ok || math.Abs(kilos) > math.MaxFloat32 {
				continue
			}
			reps, err := strconv.Atoi(strings.TrimSpace(l.Reps))
			if err != nil {
				continue
			}

			setType := l.Type
			if !setType.IsValid() {
				setType = state.SetTypeNormal
			}

			s := Set{
				UserID:       userID,
				WorkoutID:    workoutID,
				ExerciseID:   exerciseID,
				ExerciseName: name,
				MuscleGroup:  muscle,
				Kilos:        kilos,
				Reps:         reps,
				SetType:      string(setType),
				CreatedAt:    finishedAt,
			}
			if rir, err := strconv.Atoi(strings.TrimSpace(l.RIR)); err == nil {
				s.RIR = &rir
			}
			sets = append(sets, s)
		}
	}
	return sets
}

func exerciseFor(day *state.WorkoutDay, key string) *state.Exercise {
	if day == nil {
		return nil
	}
	for i := range day.Exercises {
		if strings.EqualFold(day.Exercises[i].Name, key) {
			return &day.Exercises[i]
		}
	}
	if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < len(day.Exercises) {
		return &day.Exercises[idx]
	}
	return nil
}

func identify(ex *state.Exercise, name string, resolve MuscleResolver) (id, muscle string) {
	id = slug(name)
	if ex != nil && ex.Metadata != nil {
		if ex.Metadata.ID != "" {
			id = ex.Metadata.ID
		}
		if ex.Metadata.PrimaryMuscle != "" {
			return id, string(ex.Metadata.PrimaryMuscle)
		}
	}
	if resolve != nil {
		if m, ok := resolve(name); ok {
			return id, string(m)
		}
	}
	return id, UnknownMuscleGroup
}

func slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
