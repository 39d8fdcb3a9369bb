package analytics

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/2beens/aresprotocol/internal/gymstats/daily"
	"github.com/2beens/aresprotocol/internal/state"
)

type RangeType string

const (
	Range7D     RangeType = "7D"
	Range30D    RangeType = "30D"
	Range90D    RangeType = "90D"
	RangeAll    RangeType = "ALL"
	RangeCustom RangeType = "CUSTOM"
)

const (
	TrendAccelerating = "ACCELERATING"
	TrendReceding     = "RECEDING"
	TrendNeutral      = "NEUTRAL"
	TrendDiverging    = "DIVERGING"

	defaultBodyFat        = 15
	predictedVolumeGrowth = 1.05
	defaultReadiness      = 85
	defaultSleepHours     = 7.5
	defaultHRV            = 65
	defaultRHR            = 52
	weeklyTrendWindowLen  = 7
)

var ErrInvalidRange = errors.New("invalid range")

// Window selects the dates a report covers; both ends inclusive.
type Window struct {
	Type  RangeType `json:"type"`
	Start string    `json:"start"`
	End   string    `json:"end,omitempty"`
}

// NewWindow resolves a range relative to today. Start and end are only read
// for custom ranges.
func NewWindow(rangeType RangeType, today, start, end string) (Window, error) {
	var days int
	switch rangeType {
	case "", Range7D:
		rangeType, days = Range7D, 7
	case Range30D:
		days = 30
	case Range90D:
		days = 90
	case RangeAll:
		return Window{Type: RangeAll}, nil
	case RangeCustom:
		if _, err := state.ParseDate(start); err != nil {
			return Window{}, fmt.Errorf("%w: start: %s", ErrInvalidRange, err)
		}
		if _, err := state.ParseDate(end); err != nil {
			return Window{}, fmt.Errorf("%w: end: %s", ErrInvalidRange, err)
		}
		if start > end {
			return Window{}, fmt.Errorf("%w: start after end", ErrInvalidRange)
		}
		return Window{Type: RangeCustom, Start: start, End: end}, nil
	default:
		return Window{}, fmt.Errorf("%w: %s", ErrInvalidRange, rangeType)
	}

	t, err := state.ParseDate(today)
	if err != nil {
		return Window{}, fmt.Errorf("%w: today: %s", ErrInvalidRange, err)
	}
	return Window{Type: rangeType, Start: t.AddDate(0, 0, -days).Format(state.DateLayout)}, nil
}

func (w Window) Contains(date string) bool {
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}

func filterSorted[T any](items []T, w Window, date func(T) string) []T {
	var out []T
	for _, it := range items {
		if w.Contains(date(it)) {
			out = append(out, it)
		}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(date(a), date(b))
	})
	return out
}

// MuscleResolver maps a logged exercise name to its primary muscle.
type MuscleResolver func(exerciseName string) (state.MuscleGroup, bool)

type Training struct {
	VolumeHistory    []float64 `json:"volumeHistory"`
	IntensityHistory []float64 `json:"intensityHistory"`
	SetDensity       []int     `json:"setDensity"`
	OverloadVelocity []float64 `json:"overloadVelocity"`
	Dates            []string  `json:"dates"`
}

type Weight struct {
	History         []float64 `json:"history"`
	LeanMassHistory []float64 `json:"leanMassHistory"`
	Dates           []string  `json:"dates"`
	// Velocity is the change per week over the window.
	Velocity float64 `json:"velocity"`
}

type Oracle struct {
	CurrentWeight   float64 `json:"currentWeight"`
	TargetWeight    float64 `json:"targetWeight"`
	DaysToGoal      *int    `json:"daysToGoal"`
	ETA             string  `json:"eta,omitempty"`
	Trend           string  `json:"trend"`
	PredictedVolume float64 `json:"predictedVolume"`
}

type Score struct {
	LatestZPI int    `json:"latestZpi"`
	Rank      string `json:"rank"`
}

type MuscleShare struct {
	Name       state.MuscleGroup `json:"name"`
	Percentage float64           `json:"percentage"`
}

type Symmetry struct {
	Push float64 `json:"push"`
	Pull float64 `json:"pull"`
	Legs float64 `json:"legs"`
}

type Muscles struct {
	Radar     []MuscleShare `json:"radar"`
	Frequency []int         `json:"frequency"`
	Symmetry  Symmetry      `json:"symmetry"`
}

type Nutrition struct {
	Calories []float64  `json:"calories"`
	Protein  []float64  `json:"protein"`
	Carbs    []float64  `json:"carbs"`
	Fats     []float64  `json:"fats"`
	Fiber    []float64  `json:"fiber"`
	Dates    []string   `json:"dates"`
	Totals   state.Meal `json:"totals"`
	Target   float64    `json:"target"`
}

type Recovery struct {
	Readiness float64   `json:"readiness"`
	Sleep     []float64 `json:"sleep"`
	HRV       []float64 `json:"hrv"`
	RHR       []float64 `json:"rhr"`
	Dates     []string  `json:"dates"`
}

type Report struct {
	Window    Window    `json:"window"`
	Training  Training  `json:"training"`
	Weight    Weight    `json:"weight"`
	Oracle    Oracle    `json:"oracle"`
	Score     Score     `json:"score"`
	Muscles   Muscles   `json:"muscles"`
	Nutrition Nutrition `json:"nutrition"`
	Recovery  Recovery  `json:"recovery"`
}

func dayOfMonth(date string) string {
	if i := strings.LastIndex(date, "-"); i >= 0 {
		return date[i+1:]
	}
	return date
}

// Build computes the analytics of the state over the window.
func Build(appState *state.AppState, w Window, today string, resolve MuscleResolver) Report {
	metrics := filterSorted(appState.DailyMetricsHistory, w, func(m state.DailyMetric) string { return m.Date })
	history := filterSorted(appState.WorkoutHistory, w, func(h state.WorkoutHistoryItem) string { return h.Date })
	weights := filterSorted(appState.WeightHistory, w, func(r state.WeightRecord) string { return r.Date })

	r := Report{Window: w}
	r.Training = training(metrics, history)
	r.Weight = weight(weights, appState.Profile)
	r.Oracle = oracle(r.Weight, r.Training, appState.Profile, today)
	r.Muscles = muscles(history, resolve)
	r.Nutrition = nutrition(metrics, appState.Profile)
	r.Recovery = recovery(metrics)

	if len(metrics) > 0 {
		r.Score.LatestZPI = metrics[len(metrics)-1].ZPI
	}
	r.Score.Rank = daily.Rank(r.Score.LatestZPI)
	return r
}

// training prefers stored daily volumes and falls back to the logged sessions.
func training(metrics []state.DailyMetric, history []state.WorkoutHistoryItem) Training {
	t := Training{}
	if len(metrics) > 0 {
		for _, m := range metrics {
			t.VolumeHistory = append(t.VolumeHistory, m.Volume)
		}
	} else {
		for _, h := range history {
			t.VolumeHistory = append(t.VolumeHistory, daily.SessionVolume(h))
		}
	}

	for _, h := range history {
		var rirSum float64
		var rirCount, sets int
		for _, logs := range h.Logs {
			sets += len(logs)
			for _, l := range logs {
				rir, ok := state.ParseNumber(l.RIR)
				if !ok {
					continue
				}
				rirSum += rir
				rirCount++
			}
		}
		intensity := 0.0
		if rirCount > 0 {
			intensity = rirSum / float64(rirCount)
		}
		t.IntensityHistory = append(t.IntensityHistory, intensity)
		t.SetDensity = append(t.SetDensity, sets)
		t.Dates = append(t.Dates, dayOfMonth(h.Date))
	}

	for i, vol := range t.VolumeHistory {
		if i == 0 {
			t.OverloadVelocity = append(t.OverloadVelocity, 0)
			continue
		}
		prev := t.VolumeHistory[i-1]
		if prev == 0 {
			prev = 1
		}
		t.OverloadVelocity = append(t.OverloadVelocity, (vol-prev)/prev*100)
	}
	return t
}

func weight(records []state.WeightRecord, profile *state.UserProfile) Weight {
	bodyFat := float64(defaultBodyFat)
	if profile != nil && profile.CurrentBodyFat > 0 {
		bodyFat = profile.CurrentBodyFat
	}

	w := Weight{}
	for _, r := range records {
		w.History = append(w.History, r.Weight)
		w.LeanMassHistory = append(w.LeanMassHistory, r.Weight*(1-bodyFat/100))
		w.Dates = append(w.Dates, dayOfMonth(r.Date))
	}

	if n := len(w.History); n > 1 {
		weeks := math.Max(1, float64(n)/7)
		w.Velocity = (w.History[n-1] - w.History[0]) / weeks
	}
	return w
}

// oracle projects when the goal weight is reached at the current velocity.
func oracle(w Weight, t Training, profile *state.UserProfile, today string) Oracle {
	o := Oracle{Trend: TrendNeutral}
	if n := len(w.History); n > 0 {
		o.CurrentWeight = w.History[n-1]
	} else if profile != nil {
		o.CurrentWeight = profile.Weight
	}
	if profile != nil {
		o.TargetWeight = profile.GoalWeight
	}

	if vel := w.Velocity; vel != 0 {
		diff := o.TargetWeight - o.CurrentWeight
		if (diff > 0 && vel > 0) || (diff < 0 && vel < 0) {
			days := int(math.Round(math.Abs(diff/vel) * 7))
			o.DaysToGoal = &days
			if t, err := state.ParseDate(today); err == nil {
				o.ETA = t.AddDate(0, 0, days).Format(state.DateLayout)
			}

			if n := len(w.History); n > weeklyTrendWindowLen {
				weekVelocity := w.History[n-1] - w.History[n-weeklyTrendWindowLen]
				accelerating := (diff > 0 && weekVelocity > vel) || (diff < 0 && weekVelocity < vel)
				o.Trend = TrendReceding
				if accelerating {
					o.Trend = TrendAccelerating
				}
			}
		} else {
			o.Trend = TrendDiverging
		}
	}

	if n := len(t.VolumeHistory); n > 0 {
		var sum float64
		for _, v := range t.VolumeHistory {
			sum += v
		}
		o.PredictedVolume = sum / float64(n) * predictedVolumeGrowth
	}
	return o
}

var (
	pushMuscles = []state.MuscleGroup{state.MuscleChest, state.MuscleShoulders, state.MuscleTriceps}
	pullMuscles = []state.MuscleGroup{state.MuscleBack, state.MuscleBiceps}
	legMuscles  = []state.MuscleGroup{state.MuscleQuads, state.MuscleHamstrings, state.MuscleCalves, state.MuscleGlutes}
)

func muscles(history []state.WorkoutHistoryItem, resolve MuscleResolver) Muscles {
	volume := make(map[state.MuscleGroup]float64)
	frequency := make(map[state.MuscleGroup]int)

	if resolve == nil {
		resolve = func(string) (state.MuscleGroup, bool) { return "", false }
	}

	for _, h := range history {
		hit := make(map[state.MuscleGroup]bool)
		for name, logs := range h.Logs {
			muscle, ok := resolve(name)
			if !ok {
				continue
			}
			hit[muscle] = true
			for _, l := range logs {
				volume[muscle] += daily.SetVolume(state.ExerciseLog{Weight: l.Weight, Reps: l.Reps})
			}
		}
		for m := range hit {
			frequency[m]++
		}
	}

	maxVolume := 1.0
	for _, v := range volume {
		maxVolume = math.Max(maxVolume, v)
	}

	m := Muscles{}
	for _, mg := range state.AllMuscleGroups {
		m.Radar = append(m.Radar, MuscleShare{Name: mg, Percentage: volume[mg] / maxVolume * 100})
		m.Frequency = append(m.Frequency, frequency[mg])
	}

	sum := func(groups []state.MuscleGroup) float64 {
		var total float64
		for _, g := range groups {
			total += volume[g]
		}
		return total
	}
	push, pull, legs := sum(pushMuscles), sum(pullMuscles), sum(legMuscles)
	total := push + pull + legs
	if total == 0 {
		total = 1
	}
	m.Symmetry = Symmetry{Push: push / total * 100, Pull: pull / total * 100, Legs: legs / total * 100}
	return m
}

func nutrition(metrics []state.DailyMetric, profile *state.UserProfile) Nutrition {
	n := Nutrition{}
	for _, m := range metrics {
		n.Calories = append(n.Calories, m.Calories)
		n.Protein = append(n.Protein, m.Protein)
		n.Carbs = append(n.Carbs, m.Carbs)
		n.Fats = append(n.Fats, m.Fats)
		n.Fiber = append(n.Fiber, m.Fiber)
		n.Dates = append(n.Dates, dayOfMonth(m.Date))
	}
	if len(metrics) > 0 {
		last := metrics[len(metrics)-1]
		n.Totals = state.Meal{Calories: last.Calories, Protein: last.Protein, Carbs: last.Carbs, Fats: last.Fats, Fiber: last.Fiber}
	}
	if profile != nil {
		n.Target = profile.MaintenanceCalories
	}
	return n
}

func orDefault(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}

func recovery(metrics []state.DailyMetric) Recovery {
	r := Recovery{Readiness: defaultReadiness}
	if len(metrics) > 0 {
		r.Readiness = orDefault(metrics[len(metrics)-1].Readiness, defaultReadiness)
	}
	for _, m := range metrics {
		r.Sleep = append(r.Sleep, orDefault(m.SleepHours, defaultSleepHours))
		r.HRV = append(r.HRV, orDefault(m.HRV, defaultHRV))
		r.RHR = append(r.RHR, orDefault(m.RHR, defaultRHR))
		r.Dates = append(r.Dates, dayOfMonth(m.Date))
	}
	return r
}
