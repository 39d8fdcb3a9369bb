package daily

import (
	"math"

	"github.com/2beens/aresprotocol/internal/state"
	"github.com/2beens/aresprotocol/internal/wearable"
)

const (
	DefaultTargetProtein = 180
	volumeForFullScore   = 5000
	maxPartialScore      = 50
)

// Input is everything a day's metric is derived from.
type Input struct {
	Date      string
	Workouts  []state.WorkoutHistoryItem
	Meals     []state.Meal
	Profile   *state.UserProfile
	Telemetry *wearable.Telemetry
}

// parseNumber reads a number as entered; anything unparseable counts as 0.
func parseNumber(s string) float64 {
	f, _ := state.ParseNumber(s)
	return f
}

func SetVolume(l state.ExerciseLog) float64 {
	v := parseNumber(l.Weight) * parseNumber(l.Reps)
	if l.SupersetWeight != "" && l.SupersetReps != "" {
		v += parseNumber(l.SupersetWeight) * parseNumber(l.SupersetReps)
	}
	return v
}

func SessionVolume(item state.WorkoutHistoryItem) float64 {
	var total float64
	for _, logs := range item.Logs {
		for _, l := range logs {
			total += SetVolume(l)
		}
	}
	return total
}

// Compute derives the daily metric. Macros only count checked meals.
func Compute(in Input) state.DailyMetric {
	m := state.DailyMetric{Date: in.Date}

	for _, w := range in.Workouts {
		m.Volume += SessionVolume(w)
		m.Duration += w.Duration
	}

	for _, meal := range in.Meals {
		if !meal.Checked {
			continue
		}
		m.Calories += meal.Calories
		m.Protein += meal.Protein
		m.Carbs += meal.Carbs
		m.Fats += meal.Fats
		m.Fiber += meal.Fiber
	}

	targetProtein := float64(DefaultTargetProtein)
	if in.Profile != nil && in.Profile.TargetProtein > 0 {
		targetProtein = in.Profile.TargetProtein
	}
	vScore := math.Min(maxPartialScore, m.Volume/volumeForFullScore*maxPartialScore)
	pScore := math.Min(maxPartialScore, m.Protein/targetProtein*maxPartialScore)
	m.ZPI = int(math.Round(vScore + pScore))

	if in.Profile != nil {
		weight := in.Profile.Weight
		m.Weight = &weight
	}

	if t := in.Telemetry; t != nil {
		hrv, readiness, sleep, rhr, deep := t.HRV, t.Readiness, t.SleepHours, t.RHR, t.DeepSleepMin
		m.HRV = &hrv
		m.Readiness = &readiness
		m.SleepHours = &sleep
		m.RHR = &rhr
		m.DeepSleepMin = &deep
	}

	return m
}

// FoodDone reports whether every meal of the day is checked; no meals is not done.
func FoodDone(meals []state.Meal) bool {
	if len(meals) == 0 {
		return false
	}
	for _, m := range meals {
		if !m.Checked {
			return false
		}
	}
	return true
}

// DeriveStatus returns the status of a day, empty when nothing was done.
// Rest and sick days keep their status.
func DeriveStatus(current state.DayStatus, workoutDone, foodDone bool) state.DayStatus {
	if current.IsSticky() {
		return current
	}
	switch {
	case workoutDone && foodDone:
		return state.DayStatusFull
	case workoutDone:
		return state.DayStatusWorkoutOnly
	case foodDone:
		return state.DayStatusFoodOnly
	default:
		return ""
	}
}

// Upsert replaces the metric with the same date or appends it.
func Upsert(history []state.DailyMetric, metric state.DailyMetric) []state.DailyMetric {
	for i := range history {
		if history[i].Date == metric.Date {
			history[i] = metric
			return history
		}
	}
	return append(history, metric)
}

func Rank(zpi int) string {
	switch {
	case zpi >= 90:
		return "S"
	case zpi >= 80:
		return "A"
	case zpi >= 70:
		return "B"
	case zpi >= 60:
		return "C"
	default:
		return "D"
	}
}
